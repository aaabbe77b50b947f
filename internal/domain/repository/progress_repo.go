package repository

import (
	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// ProgressRepository определяет методы для работы с прогрессом пользователей
type ProgressRepository interface {
	// GetByUserID возвращает прогресс пользователя или apperrors.ErrNotFound
	GetByUserID(userID uint) (*entity.UserProgress, error)
	// GetAll возвращает прогресс всех пользователей. Полная выборка -
	// лидерборд пересчитывается из нее при каждом запросе.
	GetAll() ([]entity.UserProgress, error)
	Count() (int64, error)
}
