package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chalkup/internal/domain"
)

func TestGetMonthMissingGridIsEmpty(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityRepo(), zap.NewNop())

	month, err := svc.GetMonth(context.Background(), "tutor-1", "2025-04")

	require.NoError(t, err)
	assert.Equal(t, "tutor-1", month.TutorID)
	assert.Equal(t, "2025-04", month.YearMonth)
	assert.Empty(t, month.Availability)
}

func TestEditDayRoundTrip(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewAvailabilityService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.EditDay(ctx, "tutor-1", domain.EditDayDTO{
		Day:    "2025-04-15",
		Action: domain.EditActionToggle,
		Mode:   domain.SessionModeOnline,
		Time:   "9:00 AM",
	})
	require.NoError(t, err)

	_, err = svc.EditDay(ctx, "tutor-1", domain.EditDayDTO{
		Day:    "2025-04-15",
		Action: domain.EditActionToggle,
		Mode:   domain.SessionModeInPerson,
		Time:   "1:00 PM",
	})
	require.NoError(t, err)

	slots, err := svc.GetDay(ctx, "tutor-1", "2025-04-15")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, domain.TimeSlot{Time: "9:00 AM", Online: true}, slots[0])
	assert.Equal(t, domain.TimeSlot{Time: "1:00 PM", InPerson: true}, slots[1])
}

func TestEditDaySelectAndClear(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewAvailabilityService(repo, zap.NewNop())
	ctx := context.Background()

	slots, err := svc.EditDay(ctx, "tutor-1", domain.EditDayDTO{
		Day:    "2025-04-15",
		Action: domain.EditActionSelectAll,
		Mode:   domain.SessionModeOnline,
	})
	require.NoError(t, err)
	assert.Len(t, slots, len(domain.TimeIntervals()))

	slots, err = svc.EditDay(ctx, "tutor-1", domain.EditDayDTO{
		Day:    "2025-04-15",
		Action: domain.EditActionClearAll,
		Mode:   domain.SessionModeOnline,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)

	// Опустевший день удаляется из сетки целиком.
	month, err := repo.GetMonth(ctx, "tutor-1", "2025-04")
	require.NoError(t, err)
	assert.Nil(t, month.Day("2025-04-15"))
}

func TestEditDayRejectsBadToggleTime(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityRepo(), zap.NewNop())

	_, err := svc.EditDay(context.Background(), "tutor-1", domain.EditDayDTO{
		Day:    "2025-04-15",
		Action: domain.EditActionToggle,
		Mode:   domain.SessionModeOnline,
		Time:   "25:00",
	})

	assert.ErrorIs(t, err, domain.ErrMalformedRange)
}

func TestEnsureSessionCountIdempotent(t *testing.T) {
	repo := newFakeAvailabilityRepo()
	svc := NewAvailabilityService(repo, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.EnsureSessionCount(ctx, "tutor-1", "2025-04"))
	require.NoError(t, repo.IncrementSessionCount(ctx, "tutor-1", "2025-04", 2, 5))

	// Повторная инициализация не обнуляет накопленный счетчик.
	require.NoError(t, svc.EnsureSessionCount(ctx, "tutor-1", "2025-04"))

	count, err := repo.GetSessionCountForWeek(ctx, "tutor-1", "2025-04", 2)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
