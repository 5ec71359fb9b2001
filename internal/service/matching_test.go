package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chalkup/internal/domain"
)

func mathTutor(id, firstName, price string) domain.User {
	return domain.User{
		ID:        id,
		FirstName: firstName,
		LastName:  "Тьюторов",
		Email:     id + "@chalkup.test",
		Type:      domain.UserTypeTutor,
		IsActive:  true,
		Subjects: []domain.TutorSubject{
			{Subject: "Math", Grade: "10", Specialization: "Algebra", Price: price},
		},
	}
}

func mathRequest() domain.MatchRequestDTO {
	return domain.MatchRequestDTO{
		Day:            "2025-04-15",
		StartTime:      "9:00 AM",
		EndTime:        "10:00 AM",
		Subject:        "Math",
		Grade:          "10",
		Specialization: "Algebra",
		Mode:           domain.SessionModeOnline,
		PriceRange:     domain.PriceRange{Min: 30, Max: 50},
	}
}

func monthWithSlots(tutorID, day string, labels ...string) domain.MonthAvailability {
	slots := make([]domain.TimeSlot, 0, len(labels))
	for _, label := range labels {
		slots = append(slots, domain.TimeSlot{Time: label, Online: true, InPerson: true})
	}
	return domain.MonthAvailability{
		TutorID:   tutorID,
		YearMonth: day[:7],
		Availability: []domain.DayAvailability{
			{Day: day, TimeSlots: slots},
		},
	}
}

func TestFindCandidateTutorsPriceFilter(t *testing.T) {
	users := &fakeUserRepo{users: []domain.User{
		mathTutor("t-cheap", "Анна", "$35/hr"),
		mathTutor("t-pricey", "Борис", "$60/hr"),
		mathTutor("t-noprice", "Вера", "договорная"),
	}}
	svc := NewMatchingService(users, newFakeAvailabilityRepo(), zap.NewNop())

	candidates, err := svc.FindCandidateTutors(context.Background(), mathRequest())

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "t-cheap", candidates[0].ID)
}

func TestFindCandidateTutorsSubjectAndGrade(t *testing.T) {
	other := mathTutor("t-other", "Григорий", "$40/hr")
	other.Subjects[0].Grade = "11"

	users := &fakeUserRepo{users: []domain.User{
		other,
		mathTutor("t-match", "Дарья", "$40/hr"),
	}}
	svc := NewMatchingService(users, newFakeAvailabilityRepo(), zap.NewNop())

	candidates, err := svc.FindCandidateTutors(context.Background(), mathRequest())

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "t-match", candidates[0].ID)
}

func TestFindCandidateTutorsSpecialization(t *testing.T) {
	geometry := mathTutor("t-geometry", "Елена", "$40/hr")
	geometry.Subjects[0].Specialization = "Geometry"

	users := &fakeUserRepo{users: []domain.User{
		geometry,
		mathTutor("t-algebra", "Жанна", "$40/hr"),
	}}
	svc := NewMatchingService(users, newFakeAvailabilityRepo(), zap.NewNop())

	candidates, err := svc.FindCandidateTutors(context.Background(), mathRequest())

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "t-algebra", candidates[0].ID)
}

func TestFindCandidateTutorsExcludesUnparseablePrice(t *testing.T) {
	users := &fakeUserRepo{users: []domain.User{
		mathTutor("t-noprice", "Вера", "договорная"),
	}}
	svc := NewMatchingService(users, newFakeAvailabilityRepo(), zap.NewNop())

	// Нижняя граница 0 не превращает нечисловую ставку в подходящую.
	dto := mathRequest()
	dto.PriceRange = domain.PriceRange{Min: 0, Max: 50}

	candidates, err := svc.FindCandidateTutors(context.Background(), dto)

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestMatchTutorForWindowPrefersLowestWeekCount(t *testing.T) {
	users := &fakeUserRepo{users: []domain.User{
		mathTutor("t-busy", "Анна", "$35/hr"),
		mathTutor("t-free", "Борис", "$40/hr"),
	}}
	avail := newFakeAvailabilityRepo()
	ctx := context.Background()

	require.NoError(t, avail.SaveMonth(ctx, monthWithSlots("t-busy", "2025-04-15", "9:00 AM", "9:30 AM")))
	require.NoError(t, avail.SaveMonth(ctx, monthWithSlots("t-free", "2025-04-15", "9:00 AM", "9:30 AM")))

	// 2025-04-15 попадает в третью неделю апреля.
	require.NoError(t, avail.InitializeSessionCount(ctx, "t-busy", "2025-04"))
	require.NoError(t, avail.InitializeSessionCount(ctx, "t-free", "2025-04"))
	require.NoError(t, avail.IncrementSessionCount(ctx, "t-busy", "2025-04", 3, 3))
	require.NoError(t, avail.IncrementSessionCount(ctx, "t-free", "2025-04", 3, 1))

	svc := NewMatchingService(users, avail, zap.NewNop())
	result, err := svc.MatchTutorForWindow(ctx, mathRequest())

	require.NoError(t, err)
	assert.Equal(t, "t-free", result.TutorID)
	assert.Equal(t, "$40/hr", result.Subject.Price)
}

func TestMatchTutorForWindowTieKeepsFirst(t *testing.T) {
	users := &fakeUserRepo{users: []domain.User{
		mathTutor("t-first", "Анна", "$35/hr"),
		mathTutor("t-second", "Борис", "$40/hr"),
	}}
	avail := newFakeAvailabilityRepo()
	ctx := context.Background()

	require.NoError(t, avail.SaveMonth(ctx, monthWithSlots("t-first", "2025-04-15", "9:00 AM", "9:30 AM")))
	require.NoError(t, avail.SaveMonth(ctx, monthWithSlots("t-second", "2025-04-15", "9:00 AM", "9:30 AM")))

	svc := NewMatchingService(users, avail, zap.NewNop())
	result, err := svc.MatchTutorForWindow(ctx, mathRequest())

	require.NoError(t, err)
	assert.Equal(t, "t-first", result.TutorID)
}

func TestMatchTutorForWindowRequiresFullCoverage(t *testing.T) {
	users := &fakeUserRepo{users: []domain.User{
		mathTutor("t-gap", "Анна", "$35/hr"),
	}}
	avail := newFakeAvailabilityRepo()
	ctx := context.Background()

	// Есть 9:00, но нет 9:30 — окно 9:00-10:00 не покрыто.
	require.NoError(t, avail.SaveMonth(ctx, monthWithSlots("t-gap", "2025-04-15", "9:00 AM")))

	svc := NewMatchingService(users, avail, zap.NewNop())
	_, err := svc.MatchTutorForWindow(ctx, mathRequest())

	assert.ErrorIs(t, err, domain.ErrNoAvailabilityData)
}

func TestMatchTutorForWindowSkipsBookedSlots(t *testing.T) {
	users := &fakeUserRepo{users: []domain.User{
		mathTutor("t-booked", "Анна", "$35/hr"),
	}}
	avail := newFakeAvailabilityRepo()
	ctx := context.Background()

	month := monthWithSlots("t-booked", "2025-04-15", "9:00 AM", "9:30 AM")
	month.Availability[0].TimeSlots[1].Booked = true
	require.NoError(t, avail.SaveMonth(ctx, month))

	svc := NewMatchingService(users, avail, zap.NewNop())
	_, err := svc.MatchTutorForWindow(ctx, mathRequest())

	assert.ErrorIs(t, err, domain.ErrNoAvailabilityData)
}

func TestMatchTutorForWindowNoCandidates(t *testing.T) {
	svc := NewMatchingService(&fakeUserRepo{}, newFakeAvailabilityRepo(), zap.NewNop())

	_, err := svc.MatchTutorForWindow(context.Background(), mathRequest())

	assert.ErrorIs(t, err, domain.ErrNoAvailabilityData)
}

func TestCandidateCalendarMergesTutors(t *testing.T) {
	users := &fakeUserRepo{users: []domain.User{
		mathTutor("t-a", "Анна", "$35/hr"),
		mathTutor("t-b", "Борис", "$40/hr"),
		mathTutor("t-pricey", "Василий", "$90/hr"),
	}}
	avail := newFakeAvailabilityRepo()
	ctx := context.Background()

	monthA := monthWithSlots("t-a", "2025-04-15", "9:30 AM", "9:00 AM")
	monthA.Availability[0].TimeSlots[0].Booked = true
	require.NoError(t, avail.SaveMonth(ctx, monthA))

	monthB := monthWithSlots("t-b", "2025-04-15", "9:00 AM", "10:00 AM")
	monthB.Availability = append(monthB.Availability, domain.DayAvailability{
		Day:       "2025-04-16",
		TimeSlots: []domain.TimeSlot{{Time: "1:00 PM", Online: true}},
	})
	require.NoError(t, avail.SaveMonth(ctx, monthB))

	// Слишком дорогой тьютор в календарь не попадает.
	require.NoError(t, avail.SaveMonth(ctx, monthWithSlots("t-pricey", "2025-04-15", "11:00 AM")))

	svc := NewMatchingService(users, avail, zap.NewNop())
	calendar, err := svc.CandidateCalendar(ctx, domain.CandidateCalendarDTO{
		Month:          "2025-04",
		Subject:        "Math",
		Grade:          "10",
		Specialization: "Algebra",
		Mode:           domain.SessionModeOnline,
		PriceRange:     domain.PriceRange{Min: 30, Max: 50},
	})

	require.NoError(t, err)
	// Забронированный 9:30 выпал, дубликат 9:00 слит, времена отсортированы.
	assert.Equal(t, map[string][]string{
		"2025-04-15": {"9:00 AM", "10:00 AM"},
		"2025-04-16": {"1:00 PM"},
	}, calendar)
}
