package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chalkup/internal/domain"
)

const (
	availabilityCollection  = "availability"
	sessionCountsCollection = "sessionCounts"

	// код Mongo "Unauthorized": подписка на чужую сетку гасится молча,
	// наблюдатель просто перестает получать обновления
	mongoCodeUnauthorized = 13
)

type AvailabilityRepo struct {
	availability  *mongo.Collection
	sessionCounts *mongo.Collection
}

func NewAvailabilityRepository(db *mongo.Database) *AvailabilityRepo {
	return &AvailabilityRepo{
		availability:  db.Collection(availabilityCollection),
		sessionCounts: db.Collection(sessionCountsCollection),
	}
}

func (r *AvailabilityRepo) GetMonth(ctx context.Context, tutorID, monthYear string) (*domain.MonthAvailability, error) {
	filter := bson.M{"tutorId": tutorID, "monthYear": monthYear}

	var month domain.MonthAvailability
	err := r.availability.FindOne(ctx, filter).Decode(&month)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoAvailabilityData
		}
		return nil, fmt.Errorf("ошибка чтения сетки доступности: %w", err)
	}

	return &month, nil
}

func (r *AvailabilityRepo) SaveMonth(ctx context.Context, month domain.MonthAvailability) error {
	month.UpdatedAt = time.Now()

	filter := bson.M{"tutorId": month.TutorID, "monthYear": month.YearMonth}
	opts := options.Replace().SetUpsert(true)

	_, err := r.availability.ReplaceOne(ctx, filter, month, opts)
	if err != nil {
		return fmt.Errorf("ошибка сохранения сетки доступности: %w", err)
	}

	return nil
}

// SetSlotsBooked выставляет флаг booked на слотах дня через
// чтение-изменение-запись всего документа. Перекрытие конкурирующих
// бронирований здесь не устраняется: защита от двойной записи лежит
// на вызывающей стороне и допускается осознанно.
func (r *AvailabilityRepo) SetSlotsBooked(ctx context.Context, tutorID, monthYear, day string, slotTimes []string, booked bool) error {
	month, err := r.GetMonth(ctx, tutorID, monthYear)
	if err != nil {
		return err
	}

	dayEntry := month.Day(day)
	if dayEntry == nil {
		return domain.ErrNoAvailabilityData
	}

	wanted := make(map[string]struct{}, len(slotTimes))
	for _, t := range slotTimes {
		wanted[t] = struct{}{}
	}

	for i := range dayEntry.TimeSlots {
		if _, ok := wanted[dayEntry.TimeSlots[i].Time]; ok {
			dayEntry.TimeSlots[i].Booked = booked
		}
	}

	return r.SaveMonth(ctx, *month)
}

func (r *AvailabilityRepo) InitializeSessionCount(ctx context.Context, tutorID, monthYear string) error {
	filter := bson.M{"tutorId": tutorID, "monthYear": monthYear}
	update := bson.M{"$setOnInsert": bson.M{
		"tutorId":   tutorID,
		"monthYear": monthYear,
		"week1":     0,
		"week2":     0,
		"week3":     0,
		"week4":     0,
		"week5":     0,
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.sessionCounts.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("ошибка инициализации счетчика сессий: %w", err)
	}

	return nil
}

func (r *AvailabilityRepo) IncrementSessionCount(ctx context.Context, tutorID, monthYear string, week, delta int) error {
	// Неделя 6 возможна для последних дней месяца, 1-е число которого
	// выпадает на пятницу-воскресенье.
	if week < 1 || week > 6 {
		return fmt.Errorf("недопустимый номер недели: %d", week)
	}

	filter := bson.M{"tutorId": tutorID, "monthYear": monthYear}
	update := bson.M{"$inc": bson.M{fmt.Sprintf("week%d", week): delta}}

	res, err := r.sessionCounts.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("ошибка изменения счетчика сессий: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: счетчик сессий не инициализирован", domain.ErrPersistence)
	}

	return nil
}

func (r *AvailabilityRepo) GetSessionCountForWeek(ctx context.Context, tutorID, monthYear string, week int) (int, error) {
	filter := bson.M{"tutorId": tutorID, "monthYear": monthYear}

	var count domain.SessionCount
	err := r.sessionCounts.FindOne(ctx, filter).Decode(&count)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("ошибка чтения счетчика сессий: %w", err)
	}

	return count.Week(week), nil
}

// Subscription — живая подписка на сетку доступности одного тьютора
// за один месяц. Первое значение в Updates приходит сразу и отражает
// текущее состояние, далее идут обновления из change stream. Если поток
// обрывается не по Close и не по нехватке прав, terminal-ошибка уходит
// в Errors перед закрытием обоих каналов.
type Subscription struct {
	Updates <-chan *domain.MonthAvailability
	Errors  <-chan error

	cancel context.CancelFunc
}

// Close останавливает подписку. Каналы Updates и Errors после этого
// закрываются.
func (s *Subscription) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (r *AvailabilityRepo) ObserveMonth(ctx context.Context, tutorID, monthYear string) (*Subscription, error) {
	snapshot, err := r.GetMonth(ctx, tutorID, monthYear)
	if err != nil && !errors.Is(err, domain.ErrNoAvailabilityData) {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"fullDocument.tutorId":   tutorID,
			"fullDocument.monthYear": monthYear,
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := r.availability.Watch(streamCtx, pipeline, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ошибка открытия change stream: %w", err)
	}

	updates := make(chan *domain.MonthAvailability, 1)
	updates <- snapshot
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		defer close(updates)
		defer stream.Close(streamCtx)

		for stream.Next(streamCtx) {
			var event struct {
				FullDocument domain.MonthAvailability `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				continue
			}
			month := event.FullDocument
			select {
			case updates <- &month:
			case <-streamCtx.Done():
				return
			}
		}

		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			var cmdErr mongo.CommandError
			if errors.As(err, &cmdErr) && cmdErr.Code == mongoCodeUnauthorized {
				return
			}
			errs <- fmt.Errorf("поток обновлений сетки прерван: %w", err)
		}
	}()

	return &Subscription{Updates: updates, Errors: errs, cancel: cancel}, nil
}
