package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chalkup/internal/domain"
)

const appointmentsCollection = "appointments"

type AppointmentRepo struct {
	appointments *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepo {
	return &AppointmentRepo{
		appointments: db.Collection(appointmentsCollection),
	}
}

func (r *AppointmentRepo) Create(ctx context.Context, appointment domain.Appointment) error {
	appointment.CreatedAt = time.Now()

	_, err := r.appointments.InsertOne(ctx, appointment)
	if err != nil {
		return fmt.Errorf("ошибка создания записи о сессии: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var appointment domain.Appointment
	err := r.appointments.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения записи о сессии: %w", err)
	}

	return &appointment, nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.appointments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("ошибка удаления записи о сессии: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func appointmentFilterQuery(filter domain.AppointmentFilter) bson.M {
	query := bson.M{}
	if filter.StudentID != nil {
		query["studentID"] = *filter.StudentID
	}
	if filter.TutorID != nil {
		query["tutorID"] = *filter.TutorID
	}
	if filter.Date != nil {
		query["date"] = *filter.Date
	}
	return query
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cursor, err := r.appointments.Find(ctx, appointmentFilterQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка сессий: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []domain.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("ошибка декодирования сессий: %w", err)
	}

	return appointments, nil
}

// Dates возвращает дни, на которые у пользователя есть сессии.
// Используется календарем для подсветки занятых дат.
func (r *AppointmentRepo) Dates(ctx context.Context, filter domain.AppointmentFilter) ([]string, error) {
	values, err := r.appointments.Distinct(ctx, "date", appointmentFilterQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения дат сессий: %w", err)
	}

	dates := make([]string, 0, len(values))
	for _, v := range values {
		if date, ok := v.(string); ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	return dates, nil
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	count, err := r.appointments.CountDocuments(ctx, appointmentFilterQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета сессий: %w", err)
	}

	return int(count), nil
}
