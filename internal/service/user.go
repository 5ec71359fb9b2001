package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chalkup/internal/domain"
	"chalkup/internal/repository"
	"chalkup/internal/storage"
	"chalkup/pkg/auth"
)

const certificationURLExpiry = time.Hour

type UserServiceImpl struct {
	repo        repository.UserRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

func NewUserService(repo repository.UserRepository, fileStorage storage.FileStorage, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:        repo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *UserServiceImpl) Create(ctx context.Context, dto domain.CreateUserDTO) (string, error) {
	existingUser, err := s.repo.GetByEmail(ctx, dto.Email)
	if err == nil && existingUser != nil {
		return "", errors.New("пользователь с таким email уже существует")
	}

	hashedPassword, err := auth.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return "", errors.New("ошибка при создании пользователя")
	}

	user := domain.User{
		ID:           uuid.New().String(),
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PasswordHash: hashedPassword,
		Type:         dto.UserType,
		Grade:        dto.Grade,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("ошибка создания пользователя", zap.Error(err))
		return "", errors.New("ошибка при создании пользователя")
	}

	return user.ID, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения пользователя по ID", zap.String("id", id), zap.Error(err))
		return nil, errors.New("пользователь не найден")
	}

	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error {
	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления пользователя", zap.String("id", id), zap.Error(err))
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("пользователь не найден")
		}
		return errors.New("ошибка при обновлении пользователя")
	}

	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id string, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("пользователь не найден")
	}

	ok, err := auth.VerifyPassword(dto.OldPassword, user.PasswordHash)
	if err != nil || !ok {
		return errors.New("неверный текущий пароль")
	}

	hashedPassword, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return errors.New("ошибка при обновлении пароля")
	}

	if err := s.repo.UpdatePassword(ctx, id, hashedPassword); err != nil {
		s.logger.Error("ошибка обновления пароля", zap.String("id", id), zap.Error(err))
		return errors.New("ошибка при обновлении пароля")
	}

	return nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления пользователя", zap.String("id", id), zap.Error(err))
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("пользователь не найден")
		}
		return errors.New("ошибка при удалении пользователя")
	}

	return nil
}

func (s *UserServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ошибка получения списка пользователей", zap.Error(err))
		return nil, errors.New("ошибка при получении списка пользователей")
	}

	return users, nil
}

// UploadCertification загружает скан сертификата тьютора и возвращает
// URL файла в хранилище. Загружать сертификаты могут только тьюторы.
func (s *UserServiceImpl) UploadCertification(ctx context.Context, tutorID string, data []byte, filename string) (string, error) {
	user, err := s.repo.GetByID(ctx, tutorID)
	if err != nil {
		return "", errors.New("пользователь не найден")
	}
	if user.Type != domain.UserTypeTutor {
		return "", errors.New("сертификаты доступны только тьюторам")
	}

	fileURL, err := s.fileStorage.UploadFile(ctx, data, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки сертификата", zap.String("tutorId", tutorID), zap.Error(err))
		return "", errors.New("ошибка при загрузке сертификата")
	}

	return fileURL, nil
}

func (s *UserServiceImpl) CertificationURL(ctx context.Context, fileURL string) (string, error) {
	url, err := s.fileStorage.GetPresignedURL(ctx, fileURL, certificationURLExpiry)
	if err != nil {
		s.logger.Error("ошибка генерации ссылки на сертификат", zap.Error(err))
		return "", errors.New("ошибка при получении ссылки на сертификат")
	}

	return url, nil
}
