package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"chalkup/internal/domain"
	"chalkup/internal/repository"
)

type AvailabilityServiceImpl struct {
	repo   repository.AvailabilityRepository
	logger *zap.Logger
}

func NewAvailabilityService(repo repository.AvailabilityRepository, logger *zap.Logger) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// GetMonth возвращает сетку месяца. Отсутствующий документ трактуется
// как пустая сетка, а не как ошибка.
func (s *AvailabilityServiceImpl) GetMonth(ctx context.Context, tutorID, monthYear string) (*domain.MonthAvailability, error) {
	month, err := s.repo.GetMonth(ctx, tutorID, monthYear)
	if err != nil {
		if errors.Is(err, domain.ErrNoAvailabilityData) {
			return &domain.MonthAvailability{
				TutorID:      tutorID,
				YearMonth:    monthYear,
				Availability: []domain.DayAvailability{},
			}, nil
		}
		s.logger.Error("ошибка чтения сетки доступности",
			zap.String("tutorId", tutorID),
			zap.String("monthYear", monthYear),
			zap.Error(err),
		)
		return nil, errors.New("ошибка при получении доступности")
	}

	return month, nil
}

func (s *AvailabilityServiceImpl) GetDay(ctx context.Context, tutorID, day string) ([]domain.TimeSlot, error) {
	date, err := domain.ParseDay(day)
	if err != nil {
		return nil, err
	}

	month, err := s.GetMonth(ctx, tutorID, domain.MonthKey(date))
	if err != nil {
		return nil, err
	}

	dayEntry := month.Day(day)
	if dayEntry == nil {
		return []domain.TimeSlot{}, nil
	}

	return dayEntry.TimeSlots, nil
}

// EditDay применяет одну операцию редактирования к слотам дня и
// сохраняет результат. День без единого слота удаляется из сетки,
// пустая сетка при этом остается валидным документом.
func (s *AvailabilityServiceImpl) EditDay(ctx context.Context, tutorID string, dto domain.EditDayDTO) ([]domain.TimeSlot, error) {
	date, err := domain.ParseDay(dto.Day)
	if err != nil {
		return nil, err
	}
	monthYear := domain.MonthKey(date)

	month, err := s.GetMonth(ctx, tutorID, monthYear)
	if err != nil {
		return nil, err
	}

	var existing []domain.TimeSlot
	if dayEntry := month.Day(dto.Day); dayEntry != nil {
		existing = dayEntry.TimeSlots
	}

	edit := domain.NewDayEdit(dto.Day, existing)
	switch dto.Action {
	case domain.EditActionSelectAll:
		edit.SelectAll(dto.Mode)
	case domain.EditActionClearAll:
		edit.ClearAll(dto.Mode)
	case domain.EditActionToggle:
		if _, err := domain.ParseTimeLabel(dto.Time); err != nil {
			return nil, err
		}
		edit.Toggle(dto.Time, dto.Mode)
	default:
		return nil, errors.New("неизвестная операция редактирования")
	}

	slots := edit.Slots()
	s.applyDay(month, dto.Day, slots, edit.Empty())

	if err := s.repo.SaveMonth(ctx, *month); err != nil {
		s.logger.Error("ошибка сохранения сетки доступности",
			zap.String("tutorId", tutorID),
			zap.String("day", dto.Day),
			zap.Error(err),
		)
		return nil, errors.New("ошибка при сохранении доступности")
	}

	return slots, nil
}

func (s *AvailabilityServiceImpl) applyDay(month *domain.MonthAvailability, day string, slots []domain.TimeSlot, empty bool) {
	for i := range month.Availability {
		if month.Availability[i].Day != day {
			continue
		}
		if empty {
			month.Availability = append(month.Availability[:i], month.Availability[i+1:]...)
		} else {
			month.Availability[i].TimeSlots = slots
		}
		return
	}

	if !empty {
		month.Availability = append(month.Availability, domain.DayAvailability{
			Day:       day,
			TimeSlots: slots,
		})
	}
}

func (s *AvailabilityServiceImpl) Observe(ctx context.Context, tutorID, monthYear string) (*repository.Subscription, error) {
	sub, err := s.repo.ObserveMonth(ctx, tutorID, monthYear)
	if err != nil {
		s.logger.Error("ошибка подписки на сетку доступности",
			zap.String("tutorId", tutorID),
			zap.String("monthYear", monthYear),
			zap.Error(err),
		)
		return nil, errors.New("ошибка при подписке на доступность")
	}

	return sub, nil
}

// EnsureSessionCount создает нулевой счетчик сессий месяца, если его
// еще нет. Операция идемпотентна и не трогает существующие значения.
func (s *AvailabilityServiceImpl) EnsureSessionCount(ctx context.Context, tutorID, monthYear string) error {
	if err := s.repo.InitializeSessionCount(ctx, tutorID, monthYear); err != nil {
		s.logger.Error("ошибка инициализации счетчика сессий",
			zap.String("tutorId", tutorID),
			zap.String("monthYear", monthYear),
			zap.Error(err),
		)
		return errors.New("ошибка при инициализации счетчика сессий")
	}

	return nil
}
