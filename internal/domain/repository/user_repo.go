package repository

import (
	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByIDs возвращает пользователей по списку id (для лидерборда).
	// Отсутствующие id молча пропускаются - такие записи исключаются из ранжирования.
	GetByIDs(ids []uint) ([]entity.User, error)
	UpdateDisplayName(userID uint, name string) error
}
