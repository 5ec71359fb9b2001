package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayEditSelectAll(t *testing.T) {
	booked := TimeSlot{Time: "10:00 AM", InPerson: true, Booked: true}
	edit := NewDayEdit("2025-04-15", []TimeSlot{booked})

	edit.SelectAll(SessionModeOnline)

	slots := edit.Slots()
	require.Len(t, slots, len(TimeIntervals()))

	for _, s := range slots {
		if s.Time == "10:00 AM" {
			// Забронированный слот не трогается массовой операцией.
			assert.Equal(t, booked, s)
			continue
		}
		assert.True(t, s.Online, s.Time)
		assert.False(t, s.InPerson, s.Time)
		assert.False(t, s.Booked, s.Time)
	}
}

func TestDayEditClearAll(t *testing.T) {
	edit := NewDayEdit("2025-04-15", []TimeSlot{
		{Time: "9:00 AM", Online: true},
		{Time: "9:30 AM", Online: true, InPerson: true},
		{Time: "10:00 AM", Online: true, Booked: true},
	})

	edit.ClearAll(SessionModeOnline)

	slots := edit.Slots()
	require.Len(t, slots, 2)

	// Слот с одним лишь online исчез, смешанный остался как inPerson.
	assert.Equal(t, TimeSlot{Time: "9:30 AM", InPerson: true}, slots[0])
	// Забронированный слот пережил очистку нетронутым.
	assert.Equal(t, TimeSlot{Time: "10:00 AM", Online: true, Booked: true}, slots[1])
}

func TestDayEditToggle(t *testing.T) {
	edit := NewDayEdit("2025-04-15", nil)

	edit.Toggle("1:00 PM", SessionModeOnline)
	require.Len(t, edit.Slots(), 1)
	assert.Equal(t, TimeSlot{Time: "1:00 PM", Online: true}, edit.Slots()[0])

	edit.Toggle("1:00 PM", SessionModeInPerson)
	assert.Equal(t, TimeSlot{Time: "1:00 PM", Online: true, InPerson: true}, edit.Slots()[0])

	edit.Toggle("1:00 PM", SessionModeOnline)
	assert.Equal(t, TimeSlot{Time: "1:00 PM", InPerson: true}, edit.Slots()[0])

	// Снятие последнего режима удаляет слот целиком.
	edit.Toggle("1:00 PM", SessionModeInPerson)
	assert.True(t, edit.Empty())
}

func TestDayEditToggleBooked(t *testing.T) {
	booked := TimeSlot{Time: "2:00 PM", Online: true, Booked: true}
	edit := NewDayEdit("2025-04-15", []TimeSlot{booked})

	edit.Toggle("2:00 PM", SessionModeOnline)
	edit.Toggle("2:00 PM", SessionModeInPerson)

	require.Len(t, edit.Slots(), 1)
	assert.Equal(t, booked, edit.Slots()[0])
}

func TestDayEditSlotsSorted(t *testing.T) {
	edit := NewDayEdit("2025-04-15", []TimeSlot{
		{Time: "1:30 PM", Online: true},
		{Time: "9:00 AM", Online: true},
		{Time: "11:00 AM", Online: true},
	})

	slots := edit.Slots()
	assert.Equal(t, "9:00 AM", slots[0].Time)
	assert.Equal(t, "11:00 AM", slots[1].Time)
	assert.Equal(t, "1:30 PM", slots[2].Time)
}
