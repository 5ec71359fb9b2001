package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"chalkup/internal/domain"
	"chalkup/internal/repository"
)

type MatchingServiceImpl struct {
	userRepo         repository.UserRepository
	availabilityRepo repository.AvailabilityRepository
	logger           *zap.Logger
}

func NewMatchingService(userRepo repository.UserRepository, availabilityRepo repository.AvailabilityRepository, logger *zap.Logger) *MatchingServiceImpl {
	return &MatchingServiceImpl{
		userRepo:         userRepo,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// FindCandidateTutors возвращает активных тьюторов, у которых есть
// позиция прайс-листа с запрошенным предметом и классом в пределах
// ценового коридора. Фильтрация делается в памяти после выборки.
func (s *MatchingServiceImpl) FindCandidateTutors(ctx context.Context, dto domain.MatchRequestDTO) ([]domain.User, error) {
	tutors, err := s.userRepo.ListActiveTutors(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка тьюторов", zap.Error(err))
		return nil, errors.New("ошибка при поиске тьюторов")
	}

	var candidates []domain.User
	for _, tutor := range tutors {
		if matchingSubject(tutor, dto) != nil {
			candidates = append(candidates, tutor)
		}
	}

	return candidates, nil
}

func matchingSubject(tutor domain.User, dto domain.MatchRequestDTO) *domain.TutorSubject {
	for i := range tutor.Subjects {
		subj := tutor.Subjects[i]
		if subj.Subject != dto.Subject || subj.Grade != dto.Grade || subj.Specialization != dto.Specialization {
			continue
		}
		price, ok := subj.PriceValue()
		if !ok || !dto.PriceRange.Contains(price) {
			continue
		}
		return &subj
	}
	return nil
}

// MatchTutorForWindow подбирает тьютора на окно [start, end): кандидат
// должен покрывать каждый 30-минутный слот окна в нужном режиме, из
// подходящих выбирается тьютор с наименьшим числом сессий на неделе
// окна. При равенстве остается первый найденный.
func (s *MatchingServiceImpl) MatchTutorForWindow(ctx context.Context, dto domain.MatchRequestDTO) (*domain.MatchResult, error) {
	date, err := domain.ParseDay(dto.Day)
	if err != nil {
		return nil, err
	}

	required, err := domain.ParseTimeRange(dto.StartTime + " - " + dto.EndTime)
	if err != nil {
		return nil, err
	}
	if len(required) == 0 {
		return nil, domain.ErrMalformedRange
	}

	candidates, err := s.FindCandidateTutors(ctx, dto)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoAvailabilityData
	}

	monthYear := domain.MonthKey(date)
	months := s.fetchAvailability(ctx, candidates, monthYear)

	week := domain.WeekNumber(date)

	var (
		best      *domain.User
		bestCount int
	)
	for i := range candidates {
		tutor := &candidates[i]

		month, ok := months[tutor.ID]
		if !ok || !coversWindow(month, dto.Day, required, dto.Mode) {
			continue
		}

		count, err := s.availabilityRepo.GetSessionCountForWeek(ctx, tutor.ID, monthYear, week)
		if err != nil {
			s.logger.Warn("ошибка чтения счетчика сессий, тьютор пропущен",
				zap.String("tutorId", tutor.ID),
				zap.Error(err),
			)
			continue
		}

		if best == nil || count < bestCount {
			best = tutor
			bestCount = count
		}
	}

	if best == nil {
		return nil, domain.ErrNoAvailabilityData
	}

	subject := matchingSubject(*best, dto)
	return &domain.MatchResult{
		TutorID:   best.ID,
		TutorName: best.FullName(),
		Subject:   *subject,
	}, nil
}

// CandidateCalendar строит слитый календарь доступности кандидатов
// за месяц: для каждой даты объединение свободных слотов нужного режима
// по всем подходящим тьюторам, времена отсортированы.
func (s *MatchingServiceImpl) CandidateCalendar(ctx context.Context, dto domain.CandidateCalendarDTO) (map[string][]string, error) {
	candidates, err := s.FindCandidateTutors(ctx, domain.MatchRequestDTO{
		Subject:        dto.Subject,
		Grade:          dto.Grade,
		Specialization: dto.Specialization,
		PriceRange:     dto.PriceRange,
	})
	if err != nil {
		return nil, err
	}

	months := s.fetchAvailability(ctx, candidates, dto.Month)

	merged := make(map[string]map[string]struct{})
	for _, month := range months {
		for _, day := range month.Availability {
			for _, slot := range day.TimeSlots {
				if !slot.EligibleFor(dto.Mode) {
					continue
				}
				if merged[day.Day] == nil {
					merged[day.Day] = make(map[string]struct{})
				}
				merged[day.Day][slot.Time] = struct{}{}
			}
		}
	}

	calendar := make(map[string][]string, len(merged))
	for day, labels := range merged {
		times := make([]string, 0, len(labels))
		for label := range labels {
			times = append(times, label)
		}
		domain.SortTimeLabels(times)
		calendar[day] = times
	}

	return calendar, nil
}

// fetchAvailability параллельно выбирает сетки месяца всех кандидатов.
// Ошибка по одному тьютору не валит подбор: такой тьютор просто
// не попадает в результат.
func (s *MatchingServiceImpl) fetchAvailability(ctx context.Context, candidates []domain.User, monthYear string) map[string]*domain.MonthAvailability {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		months = make(map[string]*domain.MonthAvailability, len(candidates))
	)

	for _, tutor := range candidates {
		wg.Add(1)
		go func(tutorID string) {
			defer wg.Done()

			month, err := s.availabilityRepo.GetMonth(ctx, tutorID, monthYear)
			if err != nil {
				if !errors.Is(err, domain.ErrNoAvailabilityData) {
					s.logger.Warn("ошибка чтения сетки кандидата",
						zap.String("tutorId", tutorID),
						zap.Error(err),
					)
				}
				return
			}

			mu.Lock()
			months[tutorID] = month
			mu.Unlock()
		}(tutor.ID)
	}

	wg.Wait()
	return months
}

func coversWindow(month *domain.MonthAvailability, day string, required []string, mode domain.SessionMode) bool {
	dayEntry := month.Day(day)
	if dayEntry == nil {
		return false
	}

	slots := make(map[string]domain.TimeSlot, len(dayEntry.TimeSlots))
	for _, slot := range dayEntry.TimeSlots {
		slots[slot.Time] = slot
	}

	for _, point := range required {
		slot, ok := slots[point]
		if !ok || !slot.EligibleFor(mode) {
			return false
		}
	}

	return true
}
