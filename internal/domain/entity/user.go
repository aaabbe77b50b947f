package entity

import (
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MaxDisplayNameLength - максимальная длина отображаемого имени
const MaxDisplayNameLength = 50

// User представляет пользователя в системе
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Email       string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password    string `gorm:"size:100;not null" json:"-"`
	DisplayName string `gorm:"size:50;not null;default:''" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет пароль пользователя
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// DisplayNameOrDefault возвращает имя пользователя для лидерборда
func (u *User) DisplayNameOrDefault() string {
	if strings.TrimSpace(u.DisplayName) != "" {
		return u.DisplayName
	}
	return "Anonymous Learner"
}

// ValidateDisplayName проверяет отображаемое имя: непустое, не длиннее 50 символов
func ValidateDisplayName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if len([]rune(trimmed)) > MaxDisplayNameLength {
		return "", fmt.Errorf("name cannot be longer than %d characters", MaxDisplayNameLength)
	}
	return trimmed, nil
}
