package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chalkup/internal/domain"
	"chalkup/internal/mailer"
	"chalkup/internal/repository"
)

type BookingServiceImpl struct {
	availabilityRepo repository.AvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	mailer           mailer.Mailer
	logger           *zap.Logger
}

func NewBookingService(repos *repository.Repositories, m mailer.Mailer, logger *zap.Logger) *BookingServiceImpl {
	return &BookingServiceImpl{
		availabilityRepo: repos.Availability,
		appointmentRepo:  repos.Appointment,
		notificationRepo: repos.Notification,
		userRepo:         repos.User,
		mailer:           m,
		logger:           logger,
	}
}

// Book проводит бронирование окна [start, end) у тьютора. Шаги идут
// строго по порядку: инкремент недельного счетчика, пометка слотов,
// запись о сессии, уведомления, письма. Отката при частичном сбое нет,
// ошибка после инкремента оставляет счетчик увеличенным.
func (s *BookingServiceImpl) Book(ctx context.Context, studentID string, dto domain.BookSessionDTO) (*domain.Appointment, error) {
	if studentID == "" {
		return nil, domain.ErrNotSignedIn
	}

	date, err := domain.ParseDay(dto.Day)
	if err != nil {
		return nil, err
	}

	slotTimes, err := domain.ParseTimeRange(dto.StartTime + " - " + dto.EndTime)
	if err != nil {
		return nil, err
	}
	if len(slotTimes) == 0 {
		return nil, domain.ErrMalformedRange
	}

	monthYear := domain.MonthKey(date)

	month, err := s.availabilityRepo.GetMonth(ctx, dto.TutorID, monthYear)
	if err != nil {
		return nil, err
	}
	if !coversWindow(month, dto.Day, slotTimes, dto.Mode) {
		return nil, domain.ErrWindowUnavailable
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, errors.New("студент не найден")
	}
	tutor, err := s.userRepo.GetByID(ctx, dto.TutorID)
	if err != nil {
		return nil, errors.New("тьютор не найден")
	}

	week := domain.WeekNumber(date)
	if err := s.availabilityRepo.InitializeSessionCount(ctx, dto.TutorID, monthYear); err != nil {
		return nil, err
	}
	if err := s.availabilityRepo.IncrementSessionCount(ctx, dto.TutorID, monthYear, week, 1); err != nil {
		return nil, err
	}

	if err := s.availabilityRepo.SetSlotsBooked(ctx, dto.TutorID, monthYear, dto.Day, slotTimes, true); err != nil {
		s.logger.Error("ошибка пометки слотов после инкремента счетчика",
			zap.String("tutorId", dto.TutorID),
			zap.String("day", dto.Day),
			zap.Error(err),
		)
		return nil, err
	}

	appointment := domain.Appointment{
		ID:            uuid.New().String(),
		StudentID:     studentID,
		TutorID:       dto.TutorID,
		Date:          dto.Day,
		Time:          dto.StartTime + " - " + dto.EndTime,
		Subject:       dto.Subject.Subject,
		SubjectObject: dto.Subject,
		Mode:          dto.Mode.DisplayName(),
		Comments:      dto.Comments,
		Status:        domain.AppointmentStatusBooked,
		StudentName:   student.FullName(),
		TutorName:     tutor.FullName(),
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		s.logger.Error("ошибка создания записи о сессии", zap.Error(err))
		return nil, errors.New("ошибка при бронировании сессии")
	}

	s.notifyBothParties(ctx, appointment, student, tutor, domain.SessionNotifBooked)
	s.mailBothParties(ctx, appointment, student, tutor, domain.SessionNotifBooked)

	return &appointment, nil
}

// Cancel отменяет сессию: слоты возвращаются в сетку, недельный счетчик
// уменьшается, обе стороны получают письма и уведомления. Сбой
// освобождения слотов или декремента прерывает отмену, а сама запись
// о сессии удаляется последней: пока она есть, отмену можно повторить.
func (s *BookingServiceImpl) Cancel(ctx context.Context, cancellerID, appointmentID string) error {
	if cancellerID == "" {
		return domain.ErrNotSignedIn
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment.StudentID != cancellerID && appointment.TutorID != cancellerID {
		return errors.New("сессия принадлежит другим пользователям")
	}

	date, err := domain.ParseDay(appointment.Date)
	if err != nil {
		return err
	}

	slotTimes, err := domain.ParseTimeRange(appointment.Time)
	if err != nil {
		return err
	}

	monthYear := domain.MonthKey(date)
	if err := s.availabilityRepo.SetSlotsBooked(ctx, appointment.TutorID, monthYear, appointment.Date, slotTimes, false); err != nil {
		s.logger.Error("ошибка освобождения слотов при отмене",
			zap.String("appointmentId", appointmentID),
			zap.Error(err),
		)
		return err
	}

	week := domain.WeekNumber(date)
	if err := s.availabilityRepo.IncrementSessionCount(ctx, appointment.TutorID, monthYear, week, -1); err != nil {
		s.logger.Error("ошибка декремента счетчика сессий при отмене",
			zap.String("appointmentId", appointmentID),
			zap.Error(err),
		)
		return err
	}

	student, err := s.userRepo.GetByID(ctx, appointment.StudentID)
	if err != nil {
		return errors.New("студент не найден")
	}
	tutor, err := s.userRepo.GetByID(ctx, appointment.TutorID)
	if err != nil {
		return errors.New("тьютор не найден")
	}

	appointment.StudentName = student.FullName()
	appointment.TutorName = tutor.FullName()

	s.mailBothParties(ctx, *appointment, student, tutor, domain.SessionNotifCancelled)
	s.notifyBothParties(ctx, *appointment, student, tutor, domain.SessionNotifCancelled)

	if err := s.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		s.logger.Error("ошибка удаления записи о сессии", zap.Error(err))
		return errors.New("ошибка при отмене сессии")
	}

	return nil
}

// notifyBothParties создает по записи в ленте каждой стороны. Сбой
// уведомления логируется и не прерывает операцию.
func (s *BookingServiceImpl) notifyBothParties(ctx context.Context, appointment domain.Appointment, student, tutor *domain.User, sessType string) {
	now := time.Now()

	pairs := []struct {
		recipient *domain.User
		other     *domain.User
	}{
		{recipient: tutor, other: student},
		{recipient: student, other: tutor},
	}

	for _, p := range pairs {
		notification := domain.Notification{
			ID:        uuid.New().String(),
			Type:      domain.NotificationTypeSession,
			UserID:    p.recipient.ID,
			UserName:  p.recipient.FullName(),
			Time:      domain.FormatTimeLabel(now),
			Date:      domain.DayKey(now),
			Comments:  appointment.Comments,
			SessType:  sessType,
			SessDate:  appointment.Date,
			SessTime:  appointment.Time,
			OtherID:   p.other.ID,
			OtherName: p.other.FullName(),
			Subject:   appointment.SubjectObject.Subject,
			Grade:     appointment.SubjectObject.Grade,
			Spec:      appointment.SubjectObject.Specialization,
			Mode:      appointment.Mode,
			Price:     appointment.SubjectObject.Price,
		}

		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			s.logger.Warn("ошибка создания уведомления",
				zap.String("userId", p.recipient.ID),
				zap.Error(err),
			)
		}
	}
}

// mailBothParties отправляет письма обеим сторонам. Сбой отправки
// логируется внутри mailer и не прерывает операцию.
func (s *BookingServiceImpl) mailBothParties(ctx context.Context, appointment domain.Appointment, student, tutor *domain.User, sessType string) {
	var subject string
	if sessType == domain.SessionNotifCancelled {
		subject = "Сессия отменена"
	} else {
		subject = "Сессия забронирована"
	}

	for _, p := range []struct {
		recipient *domain.User
		other     *domain.User
	}{
		{recipient: tutor, other: student},
		{recipient: student, other: tutor},
	} {
		msg := mailer.Message{
			ToName:  p.recipient.FullName(),
			ToEmail: p.recipient.Email,
			Subject: subject,
			Text:    sessionMailText(appointment, p.other.FullName(), sessType),
			HTML:    sessionMailHTML(appointment, p.other.FullName(), sessType),
		}

		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Warn("письмо не доставлено",
				zap.String("to", p.recipient.Email),
				zap.Error(err),
			)
		}
	}
}

func sessionMailText(appointment domain.Appointment, otherName, sessType string) string {
	action := "забронирована"
	if sessType == domain.SessionNotifCancelled {
		action = "отменена"
	}

	return fmt.Sprintf(
		"Сессия %s.\nС кем: %s\nПредмет: %s (%s класс)\nДата: %s\nВремя: %s\nФормат: %s\nСтавка: %s",
		action,
		otherName,
		appointment.SubjectObject.Subject,
		appointment.SubjectObject.Grade,
		appointment.Date,
		appointment.Time,
		appointment.Mode,
		appointment.SubjectObject.Price,
	)
}

func sessionMailHTML(appointment domain.Appointment, otherName, sessType string) string {
	action := "забронирована"
	if sessType == domain.SessionNotifCancelled {
		action = "отменена"
	}

	return fmt.Sprintf(
		`<h2>Сессия %s</h2>
<table>
<tr><td>С кем</td><td>%s</td></tr>
<tr><td>Предмет</td><td>%s (%s класс)</td></tr>
<tr><td>Дата</td><td>%s</td></tr>
<tr><td>Время</td><td>%s</td></tr>
<tr><td>Формат</td><td>%s</td></tr>
<tr><td>Ставка</td><td>%s</td></tr>
</table>`,
		action,
		otherName,
		appointment.SubjectObject.Subject,
		appointment.SubjectObject.Grade,
		appointment.Date,
		appointment.Time,
		appointment.Mode,
		appointment.SubjectObject.Price,
	)
}
