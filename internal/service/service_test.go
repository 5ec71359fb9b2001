package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"chalkup/internal/domain"
	"chalkup/internal/mailer"
	"chalkup/internal/repository"
)

// Фейковые репозитории держат состояние в памяти и повторяют контрактное
// поведение монго-реализаций: отсутствующая сетка — ErrNoAvailabilityData,
// инициализация счетчика идемпотентна, инкремент атомарен.

type fakeUserRepo struct {
	mu    sync.Mutex
	users []domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, id string, dto domain.UpdateUserDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID != id {
			continue
		}
		if dto.FirstName != nil {
			r.users[i].FirstName = *dto.FirstName
		}
		if dto.LastName != nil {
			r.users[i].LastName = *dto.LastName
		}
		if dto.Subjects != nil {
			r.users[i].Subjects = *dto.Subjects
		}
		return nil
	}
	return domain.ErrNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.User(nil), r.users...), nil
}

func (r *fakeUserRepo) ListActiveTutors(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tutors []domain.User
	for _, u := range r.users {
		if u.Type == domain.UserTypeTutor && u.IsActive {
			tutors = append(tutors, u)
		}
	}
	return tutors, nil
}

type fakeAvailabilityRepo struct {
	mu     sync.Mutex
	months map[string]domain.MonthAvailability
	counts map[string]map[int]int
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{
		months: make(map[string]domain.MonthAvailability),
		counts: make(map[string]map[int]int),
	}
}

func gridKey(tutorID, monthYear string) string {
	return fmt.Sprintf("%s/%s", tutorID, monthYear)
}

func (r *fakeAvailabilityRepo) GetMonth(_ context.Context, tutorID, monthYear string) (*domain.MonthAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	month, ok := r.months[gridKey(tutorID, monthYear)]
	if !ok {
		return nil, domain.ErrNoAvailabilityData
	}
	copied := month
	copied.Availability = append([]domain.DayAvailability(nil), month.Availability...)
	for i := range copied.Availability {
		copied.Availability[i].TimeSlots = append([]domain.TimeSlot(nil), copied.Availability[i].TimeSlots...)
	}
	return &copied, nil
}

func (r *fakeAvailabilityRepo) SaveMonth(_ context.Context, month domain.MonthAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.months[gridKey(month.TutorID, month.YearMonth)] = month
	return nil
}

func (r *fakeAvailabilityRepo) ObserveMonth(context.Context, string, string) (*repository.Subscription, error) {
	return nil, domain.ErrPersistence
}

func (r *fakeAvailabilityRepo) SetSlotsBooked(_ context.Context, tutorID, monthYear, day string, slotTimes []string, booked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	month, ok := r.months[gridKey(tutorID, monthYear)]
	if !ok {
		return domain.ErrNoAvailabilityData
	}

	wanted := make(map[string]struct{}, len(slotTimes))
	for _, t := range slotTimes {
		wanted[t] = struct{}{}
	}

	for i := range month.Availability {
		if month.Availability[i].Day != day {
			continue
		}
		for j := range month.Availability[i].TimeSlots {
			if _, ok := wanted[month.Availability[i].TimeSlots[j].Time]; ok {
				month.Availability[i].TimeSlots[j].Booked = booked
			}
		}
	}

	r.months[gridKey(tutorID, monthYear)] = month
	return nil
}

func (r *fakeAvailabilityRepo) InitializeSessionCount(_ context.Context, tutorID, monthYear string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := gridKey(tutorID, monthYear)
	if _, ok := r.counts[key]; !ok {
		r.counts[key] = map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	}
	return nil
}

func (r *fakeAvailabilityRepo) IncrementSessionCount(_ context.Context, tutorID, monthYear string, week, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := gridKey(tutorID, monthYear)
	if _, ok := r.counts[key]; !ok {
		return domain.ErrPersistence
	}
	r.counts[key][week] += delta
	return nil
}

func (r *fakeAvailabilityRepo) GetSessionCountForWeek(_ context.Context, tutorID, monthYear string, week int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[gridKey(tutorID, monthYear)][week], nil
}

func (r *fakeAvailabilityRepo) slot(tutorID, monthYear, day, label string) (domain.TimeSlot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	month, ok := r.months[gridKey(tutorID, monthYear)]
	if !ok {
		return domain.TimeSlot{}, false
	}
	for _, d := range month.Availability {
		if d.Day != day {
			continue
		}
		for _, s := range d.TimeSlots {
			if s.Time == label {
				return s, true
			}
		}
	}
	return domain.TimeSlot{}, false
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[string]domain.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &appointment, nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Appointment
	for _, a := range r.appointments {
		if filter.StudentID != nil && a.StudentID != *filter.StudentID {
			continue
		}
		if filter.TutorID != nil && a.TutorID != *filter.TutorID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	list, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func (r *fakeAppointmentRepo) Dates(ctx context.Context, filter domain.AppointmentFilter) ([]string, error) {
	list, err := r.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var dates []string
	for _, a := range list {
		if !seen[a.Date] {
			seen[a.Date] = true
			dates = append(dates, a.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}
