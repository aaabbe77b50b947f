package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
)

// ProgressRepo реализует repository.ProgressRepository
type ProgressRepo struct {
	db *gorm.DB
}

// NewProgressRepo создает новый репозиторий прогресса
func NewProgressRepo(db *gorm.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// GetByUserID возвращает прогресс пользователя
func (r *ProgressRepo) GetByUserID(userID uint) (*entity.UserProgress, error) {
	var progress entity.UserProgress
	err := r.db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// GetAll возвращает прогресс всех пользователей
func (r *ProgressRepo) GetAll() ([]entity.UserProgress, error) {
	var progress []entity.UserProgress
	err := r.db.Order("id ASC").Find(&progress).Error
	return progress, err
}

// Count возвращает количество записей прогресса
func (r *ProgressRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.UserProgress{}).Count(&count).Error
	return count, err
}
