package domain

import (
	"time"
)

type SessionMode string

const (
	SessionModeOnline   SessionMode = "online"
	SessionModeInPerson SessionMode = "inPerson"
)

// DisplayName возвращает отображаемое значение режима,
// в котором он хранится в записях о сессиях.
func (m SessionMode) DisplayName() string {
	if m == SessionModeInPerson {
		return "In Person"
	}
	return "Online"
}

// TimeSlot — один 30-минутный слот дня. Слот без единого включенного
// режима считается отсутствующим и не должен сохраняться.
type TimeSlot struct {
	Time     string `json:"time" bson:"time"`
	Online   bool   `json:"online" bson:"online"`
	InPerson bool   `json:"inPerson" bson:"inPerson"`
	Booked   bool   `json:"booked" bson:"booked"`
}

// EligibleFor сообщает, пригоден ли слот для выбранного режима занятия.
// Забронированный слот недоступен в обоих режимах.
func (s TimeSlot) EligibleFor(mode SessionMode) bool {
	if s.Booked {
		return false
	}
	switch mode {
	case SessionModeOnline:
		return s.Online
	case SessionModeInPerson:
		return s.InPerson
	default:
		return false
	}
}

// DayAvailability — слоты одного календарного дня, упорядоченные по времени.
type DayAvailability struct {
	Day       string     `json:"day" bson:"day"`
	TimeSlots []TimeSlot `json:"timeSlots" bson:"timeSlots"`
}

// MonthAvailability — сетка доступности тьютора на один календарный месяц.
// Один документ на пару (тьютор, месяц); при сохранении заменяется целиком,
// кроме флага booked, которым управляет транзакция бронирования.
type MonthAvailability struct {
	TutorID      string            `json:"tutor_id" bson:"tutorId"`
	YearMonth    string            `json:"year_month" bson:"monthYear"`
	Availability []DayAvailability `json:"availability" bson:"availability"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updatedAt"`
}

// Day возвращает запись дня или nil, если день не опубликован.
func (m *MonthAvailability) Day(day string) *DayAvailability {
	if m == nil {
		return nil
	}
	for i := range m.Availability {
		if m.Availability[i].Day == day {
			return &m.Availability[i]
		}
	}
	return nil
}

// SessionCount — счетчики забронированных сессий тьютора по неделям месяца.
// Мутируются только атомарным инкрементом, никогда чтением-изменением-записью:
// это ключ балансировки нагрузки и он должен оставаться свободным от гонок.
type SessionCount struct {
	TutorID   string `json:"tutor_id" bson:"tutorId"`
	YearMonth string `json:"year_month" bson:"monthYear"`
	Week1     int    `json:"week1" bson:"week1"`
	Week2     int    `json:"week2" bson:"week2"`
	Week3     int    `json:"week3" bson:"week3"`
	Week4     int    `json:"week4" bson:"week4"`
	Week5     int    `json:"week5" bson:"week5"`
	// Week6 появляется у счетчика только инкрементом: месяц, начавшийся
	// в пятницу-воскресенье, дает шестую неделю для последних дней.
	Week6 int `json:"week6,omitempty" bson:"week6,omitempty"`
}

// Week возвращает счетчик недели n (1-6).
func (c SessionCount) Week(n int) int {
	switch n {
	case 1:
		return c.Week1
	case 2:
		return c.Week2
	case 3:
		return c.Week3
	case 4:
		return c.Week4
	case 5:
		return c.Week5
	case 6:
		return c.Week6
	default:
		return 0
	}
}
