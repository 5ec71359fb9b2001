package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{
			name: "час дает две точки",
			in:   "9:00 AM - 10:00 AM",
			want: []string{"9:00 AM", "9:30 AM"},
		},
		{
			name: "полтора часа дают три точки",
			in:   "1:00 PM - 2:30 PM",
			want: []string{"1:00 PM", "1:30 PM", "2:00 PM"},
		},
		{
			name: "один слот",
			in:   "11:30 AM - 12:00 PM",
			want: []string{"11:30 AM"},
		},
		{
			name:    "нет разделителя",
			in:      "9:00 AM 10:00 AM",
			wantErr: true,
		},
		{
			name:    "мусор вместо времени",
			in:      "nine - ten",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeRange(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekNumber(t *testing.T) {
	// Апрель 2025 начинается со вторника.
	tests := []struct {
		day  string
		want int
	}{
		{"2025-04-01", 1},
		{"2025-04-05", 1},
		{"2025-04-06", 2},
		{"2025-04-12", 2},
		{"2025-04-15", 3},
		{"2025-04-30", 5},
		// Июнь 2025 начинается с воскресенья: день недели считается за 7,
		// и последние дни месяца попадают в шестую неделю.
		{"2025-06-01", 2},
		{"2025-06-30", 6},
		// Сентябрь 2025 начинается с понедельника.
		{"2025-09-01", 1},
		{"2025-09-30", 5},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			date, err := ParseDay(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, WeekNumber(date))
		})
	}
}

func TestWeekNumberMonotonic(t *testing.T) {
	prev := 0
	for d := 1; d <= 31; d++ {
		date := time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
		week := WeekNumber(date)
		assert.GreaterOrEqual(t, week, prev, "день %d", d)
		assert.GreaterOrEqual(t, week, 1)
		assert.LessOrEqual(t, week, 6)
		prev = week
	}
}

func TestValidEndTimes(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		available []string
		want      []string
	}{
		{
			name:      "непрерывный ряд плюс точка за разрывом",
			start:     "9:00 AM",
			available: []string{"9:00 AM", "9:30 AM", "10:00 AM"},
			want:      []string{"9:30 AM", "10:00 AM", "10:30 AM"},
		},
		{
			name:      "точки после разрыва не учитываются",
			start:     "9:00 AM",
			available: []string{"9:00 AM", "9:30 AM", "11:00 AM", "11:30 AM"},
			want:      []string{"9:30 AM", "10:00 AM"},
		},
		{
			name:      "единственный слот",
			start:     "3:00 PM",
			available: []string{"3:00 PM"},
			want:      []string{"3:30 PM"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidEndTimes(tt.start, tt.available)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeIntervals(t *testing.T) {
	intervals := TimeIntervals()

	require.Len(t, intervals, 26)
	assert.Equal(t, "9:00 AM", intervals[0])
	assert.Equal(t, "9:30 PM", intervals[len(intervals)-1])

	for i := 1; i < len(intervals); i++ {
		prev, err := ParseTimeLabel(intervals[i-1])
		require.NoError(t, err)
		cur, err := ParseTimeLabel(intervals[i])
		require.NoError(t, err)
		assert.Equal(t, SlotStep, cur.Sub(prev))
	}
}

func TestSortTimeLabels(t *testing.T) {
	labels := []string{"1:00 PM", "9:00 AM", "11:30 AM", "9:30 PM"}
	SortTimeLabels(labels)
	assert.Equal(t, []string{"9:00 AM", "11:30 AM", "1:00 PM", "9:30 PM"}, labels)
}

func TestDayKeys(t *testing.T) {
	date, err := ParseDay("2025-04-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-04", MonthKey(date))
	assert.Equal(t, "2025-04-15", DayKey(date))

	_, err = ParseDay("15.04.2025")
	assert.Error(t, err)
}
