package domain

import (
	"time"
)

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Session struct {
	ID           string    `json:"id" bson:"_id"`
	UserID       string    `json:"user_id" bson:"userID"`
	RefreshToken string    `json:"refresh_token" bson:"refreshToken"`
	UserAgent    string    `json:"user_agent" bson:"userAgent"`
	IP           string    `json:"ip" bson:"ip"`
	ExpiresAt    time.Time `json:"expires_at" bson:"expiresAt"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"`
}

type RegisterRequest struct {
	FirstName string   `json:"first_name" binding:"required"`
	LastName  string   `json:"last_name" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=6"`
	UserType  UserType `json:"user_type" binding:"required,oneof=Student Tutor"`
	Grade     int      `json:"grade"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
