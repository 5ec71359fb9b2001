package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chalkup/internal/domain"
)

const notificationsCollection = "notifications"

type NotificationRepo struct {
	notifications *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepo {
	return &NotificationRepo{
		notifications: db.Collection(notificationsCollection),
	}
}

func (r *NotificationRepo) Create(ctx context.Context, notification domain.Notification) error {
	_, err := r.notifications.InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("ошибка создания уведомления: %w", err)
	}

	return nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "notifDate", Value: -1}, {Key: "notifTime", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}

	cursor, err := r.notifications.Find(ctx, bson.M{"notifUserID": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения уведомлений: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []domain.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("ошибка декодирования уведомлений: %w", err)
	}

	return notifications, nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.notifications.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("ошибка удаления уведомления: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}
