package service

import (
	"context"

	"go.uber.org/zap"

	"chalkup/config"
	"chalkup/internal/domain"
	"chalkup/internal/mailer"
	"chalkup/internal/repository"
	"chalkup/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Mailer      mailer.Mailer
}

type Services struct {
	User         UserService
	Auth         AuthService
	Availability AvailabilityService
	Matching     MatchingService
	Booking      BookingService
	Appointment  AppointmentService
	Notification NotificationService
}

func NewServices(deps Deps) *Services {
	availability := NewAvailabilityService(deps.Repos.Availability, deps.Logger)
	matching := NewMatchingService(deps.Repos.User, deps.Repos.Availability, deps.Logger)

	return &Services{
		User:         NewUserService(deps.Repos.User, deps.FileStorage, deps.Logger),
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Availability: availability,
		Matching:     matching,
		Booking:      NewBookingService(deps.Repos, deps.Mailer, deps.Logger),
		Appointment:  NewAppointmentService(deps.Repos.Appointment, deps.Repos.User, deps.Logger),
		Notification: NewNotificationService(deps.Repos.Notification, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id string, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)

	UploadCertification(ctx context.Context, tutorID string, data []byte, filename string) (string, error)
	CertificationURL(ctx context.Context, fileURL string) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (string, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (string, domain.UserType, error)
}

// AvailabilityService управляет помесячными сетками доступности тьютора.
type AvailabilityService interface {
	GetMonth(ctx context.Context, tutorID, monthYear string) (*domain.MonthAvailability, error)
	GetDay(ctx context.Context, tutorID, day string) ([]domain.TimeSlot, error)
	EditDay(ctx context.Context, tutorID string, dto domain.EditDayDTO) ([]domain.TimeSlot, error)
	Observe(ctx context.Context, tutorID, monthYear string) (*repository.Subscription, error)
	EnsureSessionCount(ctx context.Context, tutorID, monthYear string) error
}

// MatchingService подбирает тьютора под запрошенное окно.
type MatchingService interface {
	FindCandidateTutors(ctx context.Context, dto domain.MatchRequestDTO) ([]domain.User, error)
	MatchTutorForWindow(ctx context.Context, dto domain.MatchRequestDTO) (*domain.MatchResult, error)
	CandidateCalendar(ctx context.Context, dto domain.CandidateCalendarDTO) (map[string][]string, error)
}

// BookingService проводит бронирование и отмену сессий.
type BookingService interface {
	Book(ctx context.Context, studentID string, dto domain.BookSessionDTO) (*domain.Appointment, error)
	Cancel(ctx context.Context, cancellerID, appointmentID string) error
}

type AppointmentService interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	ListDates(ctx context.Context, filter domain.AppointmentFilter) ([]string, error)
}

type NotificationService interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error)
	Delete(ctx context.Context, id string) error
}
