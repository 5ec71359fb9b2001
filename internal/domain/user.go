package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

type User struct {
	ID           string         `json:"id" bson:"_id"`
	FirstName    string         `json:"first_name" bson:"firstName"`
	LastName     string         `json:"last_name" bson:"lastName"`
	Email        string         `json:"email" bson:"email"`
	PasswordHash string         `json:"-" bson:"passwordHash"`
	Type         UserType       `json:"user_type" bson:"userType"`
	Grade        int            `json:"grade,omitempty" bson:"grade,omitempty"`
	Subjects     []TutorSubject `json:"subjects,omitempty" bson:"subjects,omitempty"`
	IsActive     bool           `json:"is_active" bson:"active"`
	CreatedAt    time.Time      `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updatedAt"`
}

type UserType string

const (
	UserTypeStudent UserType = "Student"
	UserTypeTutor   UserType = "Tutor"
	UserTypeAdmin   UserType = "Admin"
)

// TutorSubject — позиция прайс-листа тьютора: предмет, класс,
// специализация и почасовая ставка в виде строки с долларом.
type TutorSubject struct {
	Subject        string `json:"subject" bson:"subject"`
	Grade          string `json:"grade" bson:"grade"`
	Specialization string `json:"specialization" bson:"specialization"`
	Price          string `json:"price" bson:"price"`
}

var priceNumberRe = regexp.MustCompile(`\d+(\.\d+)?`)

// PriceValue извлекает числовое значение ставки из строки вида "$35/час".
// Второе значение false означает, что в строке нет разбираемого числа:
// такая позиция молча исключается из подбора, а не считается бесплатной.
func (s TutorSubject) PriceValue() (float64, bool) {
	match := priceNumberRe.FindString(s.Price)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FullName собирает отображаемое имя пользователя.
func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

type CreateUserDTO struct {
	FirstName string   `json:"first_name" binding:"required"`
	LastName  string   `json:"last_name" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=6"`
	UserType  UserType `json:"user_type" binding:"required,oneof=Student Tutor"`
	Grade     int      `json:"grade"`
}

type UpdateUserDTO struct {
	FirstName *string         `json:"first_name"`
	LastName  *string         `json:"last_name"`
	Grade     *int            `json:"grade"`
	Subjects  *[]TutorSubject `json:"subjects"`
	IsActive  *bool           `json:"is_active"`
}

type AuthUserDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PasswordUpdateDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// PriceRange — допустимый коридор почасовой ставки при подборе тьютора.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains проверяет попадание ставки в коридор включительно.
func (r PriceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}
