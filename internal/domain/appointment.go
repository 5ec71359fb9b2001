package domain

import (
	"time"
)

const AppointmentStatusBooked = "booked"

// Appointment — забронированная сессия. Поле Time хранит диапазон
// в исходном строковом формате "3:04 PM - 3:04 PM", поле Date — день
// в формате "2006-01-02"; из них при отмене восстанавливаются слоты.
type Appointment struct {
	ID             string       `json:"id" bson:"_id"`
	StudentID      string       `json:"student_id" bson:"studentID"`
	TutorID        string       `json:"tutor_id" bson:"tutorID"`
	Date           string       `json:"date" bson:"date"`
	Time           string       `json:"time" bson:"time"`
	Subject        string       `json:"subject" bson:"subject"`
	SubjectObject  TutorSubject `json:"subject_object" bson:"subjectObject"`
	Mode           string       `json:"mode" bson:"mode"`
	Comments       string       `json:"comments" bson:"comments"`
	Status         string       `json:"status" bson:"status"`
	CreatedAt      time.Time    `json:"created_at" bson:"createdAt"`
	StudentName    string       `json:"student_name,omitempty" bson:"-"`
	TutorName      string       `json:"tutor_name,omitempty" bson:"-"`
}

// BookSessionDTO — запрос студента на бронирование окна у тьютора.
type BookSessionDTO struct {
	TutorID   string       `json:"tutor_id" binding:"required"`
	Day       string       `json:"day" binding:"required"`
	StartTime string       `json:"start_time" binding:"required"`
	EndTime   string       `json:"end_time" binding:"required"`
	Subject   TutorSubject `json:"subject" binding:"required"`
	Mode      SessionMode  `json:"mode" binding:"required,oneof=online inPerson"`
	Comments  string       `json:"comments"`
}

// MatchRequestDTO — критерии автоподбора тьютора на окно. Позиция
// прайс-листа кандидата должна совпасть по предмету, классу
// и специализации одновременно.
type MatchRequestDTO struct {
	Day            string      `json:"day" binding:"required"`
	StartTime      string      `json:"start_time" binding:"required"`
	EndTime        string      `json:"end_time" binding:"required"`
	Subject        string      `json:"subject" binding:"required"`
	Grade          string      `json:"grade" binding:"required"`
	Specialization string      `json:"specialization" binding:"required"`
	Mode           SessionMode `json:"mode" binding:"required,oneof=online inPerson"`
	PriceRange     PriceRange  `json:"price_range"`
}

// CandidateCalendarDTO — критерии слитого календаря доступности: те же
// фильтры кандидатов, но вместо окна запрашивается целый месяц.
type CandidateCalendarDTO struct {
	Month          string      `json:"month" binding:"required"`
	Subject        string      `json:"subject" binding:"required"`
	Grade          string      `json:"grade" binding:"required"`
	Specialization string      `json:"specialization" binding:"required"`
	Mode           SessionMode `json:"mode" binding:"required,oneof=online inPerson"`
	PriceRange     PriceRange  `json:"price_range"`
}

// MatchResult — выбранный тьютор и его позиция прайс-листа,
// по которой будет оформлено бронирование.
type MatchResult struct {
	TutorID   string       `json:"tutor_id"`
	TutorName string       `json:"tutor_name"`
	Subject   TutorSubject `json:"subject"`
}

type AppointmentFilter struct {
	StudentID *string `json:"student_id"`
	TutorID   *string `json:"tutor_id"`
	Date      *string `json:"date"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}
