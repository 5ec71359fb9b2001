package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"chalkup/internal/domain"
)

const sessionsCollection = "sessions"

type AuthRepo struct {
	sessions *mongo.Collection
}

func NewAuthRepository(db *mongo.Database) *AuthRepo {
	return &AuthRepo{
		sessions: db.Collection(sessionsCollection),
	}
}

func (r *AuthRepo) CreateSession(ctx context.Context, session domain.Session) error {
	_, err := r.sessions.InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}

	return nil
}

func (r *AuthRepo) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	var session domain.Session
	err := r.sessions.FindOne(ctx, bson.M{"refreshToken": refreshToken}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}

	return &session, nil
}

func (r *AuthRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.sessions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}

	return nil
}

func (r *AuthRepo) DeleteSessionsByUserID(ctx context.Context, userID string) error {
	_, err := r.sessions.DeleteMany(ctx, bson.M{"userID": userID})
	if err != nil {
		return fmt.Errorf("ошибка удаления сессий пользователя: %w", err)
	}

	return nil
}
