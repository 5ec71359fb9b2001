package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"chalkup/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Availability AvailabilityRepository
	Appointment  AppointmentRepository
	Notification NotificationRepository
	Auth         AuthRepository
}

func NewRepositories(db *mongo.Database, cache *redis.Client) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db, cache),
		Availability: NewAvailabilityRepository(db),
		Appointment:  NewAppointmentRepository(db),
		Notification: NewNotificationRepository(db),
		Auth:         NewAuthRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	ListActiveTutors(ctx context.Context) ([]domain.User, error)
}

// AvailabilityRepository работает с помесячными сетками доступности
// тьюторов и недельными счетчиками сессий.
type AvailabilityRepository interface {
	GetMonth(ctx context.Context, tutorID, monthYear string) (*domain.MonthAvailability, error)
	SaveMonth(ctx context.Context, month domain.MonthAvailability) error
	ObserveMonth(ctx context.Context, tutorID, monthYear string) (*Subscription, error)
	SetSlotsBooked(ctx context.Context, tutorID, monthYear, day string, slotTimes []string, booked bool) error

	InitializeSessionCount(ctx context.Context, tutorID, monthYear string) error
	IncrementSessionCount(ctx context.Context, tutorID, monthYear string, week, delta int) error
	GetSessionCountForWeek(ctx context.Context, tutorID, monthYear string, week int) (int, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	Dates(ctx context.Context, filter domain.AppointmentFilter) ([]string, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error)
	Delete(ctx context.Context, id string) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID string) error
}
