package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chalkup/internal/domain"
)

const (
	usersCollection = "users"

	userCacheTTL = 15 * time.Minute
)

type UserRepo struct {
	users *mongo.Collection
	cache *redis.Client
}

func NewUserRepository(db *mongo.Database, cache *redis.Client) *UserRepo {
	return &UserRepo{
		users: db.Collection(usersCollection),
		cache: cache,
	}
}

func userCacheKey(id string) string {
	return "user:" + id
}

func (r *UserRepo) Create(ctx context.Context, user domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.users.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.cache != nil {
		raw, err := r.cache.Get(ctx, userCacheKey(id)).Bytes()
		if err == nil {
			var user domain.User
			if err := json.Unmarshal(raw, &user); err == nil {
				return &user, nil
			}
		}
	}

	var user domain.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения пользователя: %w", err)
	}

	if r.cache != nil {
		if raw, err := json.Marshal(user); err == nil {
			r.cache.Set(ctx, userCacheKey(id), raw, userCacheTTL)
		}
	}

	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения пользователя: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, dto domain.UpdateUserDTO) error {
	set := bson.M{"updatedAt": time.Now()}

	if dto.FirstName != nil {
		set["firstName"] = *dto.FirstName
	}
	if dto.LastName != nil {
		set["lastName"] = *dto.LastName
	}
	if dto.Grade != nil {
		set["grade"] = *dto.Grade
	}
	if dto.Subjects != nil {
		set["subjects"] = *dto.Subjects
	}
	if dto.IsActive != nil {
		set["active"] = *dto.IsActive
	}

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	update := bson.M{"$set": bson.M{
		"passwordHash": passwordHash,
		"updatedAt":    time.Now(),
	}}

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("ошибка обновления пароля: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка пользователей: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("ошибка декодирования пользователей: %w", err)
	}

	return users, nil
}

// ListActiveTutors возвращает всех активных тьюторов. Фильтрация по
// предмету и ставке делается уже в памяти подбирающим сервисом.
func (r *UserRepo) ListActiveTutors(ctx context.Context) ([]domain.User, error) {
	filter := bson.M{"userType": domain.UserTypeTutor, "active": true}

	cursor, err := r.users.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка тьюторов: %w", err)
	}
	defer cursor.Close(ctx)

	var tutors []domain.User
	if err := cursor.All(ctx, &tutors); err != nil {
		return nil, fmt.Errorf("ошибка декодирования тьюторов: %w", err)
	}

	return tutors, nil
}

func (r *UserRepo) invalidate(ctx context.Context, id string) {
	if r.cache != nil {
		r.cache.Del(ctx, userCacheKey(id))
	}
}
