package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"chalkup/internal/domain"
	"chalkup/internal/repository"
)

type AppointmentServiceImpl struct {
	repo     repository.AppointmentRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewAppointmentService(repo repository.AppointmentRepository, userRepo repository.UserRepository, logger *zap.Logger) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("сессия не найдена")
		}
		s.logger.Error("ошибка получения сессии", zap.String("id", id), zap.Error(err))
		return nil, errors.New("ошибка при получении сессии")
	}

	s.resolveNames(ctx, appointment)
	return appointment, nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка сессий", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка сессий")
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка подсчета сессий", zap.Error(err))
		return nil, 0, errors.New("ошибка при получении списка сессий")
	}

	for i := range appointments {
		s.resolveNames(ctx, &appointments[i])
	}

	return appointments, total, nil
}

// ListDates возвращает дни с сессиями пользователя для календаря.
func (s *AppointmentServiceImpl) ListDates(ctx context.Context, filter domain.AppointmentFilter) ([]string, error) {
	dates, err := s.repo.Dates(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения дат сессий", zap.Error(err))
		return nil, errors.New("ошибка при получении дат сессий")
	}

	return dates, nil
}

// resolveNames подставляет отображаемые имена сторон. Ошибка поиска
// пользователя оставляет имя пустым и не валит запрос.
func (s *AppointmentServiceImpl) resolveNames(ctx context.Context, appointment *domain.Appointment) {
	if student, err := s.userRepo.GetByID(ctx, appointment.StudentID); err == nil {
		appointment.StudentName = student.FullName()
	}
	if tutor, err := s.userRepo.GetByID(ctx, appointment.TutorID); err == nil {
		appointment.TutorName = tutor.FullName()
	}
}
