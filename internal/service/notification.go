package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"chalkup/internal/domain"
	"chalkup/internal/repository"
)

type NotificationServiceImpl struct {
	repo   repository.NotificationRepository
	logger *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, logger *zap.Logger) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *NotificationServiceImpl) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("ошибка получения уведомлений", zap.String("userId", userID), zap.Error(err))
		return nil, errors.New("ошибка при получении уведомлений")
	}

	return notifications, nil
}

func (s *NotificationServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("уведомление не найдено")
		}
		s.logger.Error("ошибка удаления уведомления", zap.String("id", id), zap.Error(err))
		return errors.New("ошибка при удалении уведомления")
	}

	return nil
}
