package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// BadgeRepo реализует repository.BadgeRepository
type BadgeRepo struct {
	db *gorm.DB
}

// NewBadgeRepo создает новый репозиторий NFT-бейджей
func NewBadgeRepo(db *gorm.DB) *BadgeRepo {
	return &BadgeRepo{db: db}
}

// Create сохраняет новый бейдж
func (r *BadgeRepo) Create(badge *entity.NFTBadge) error {
	return r.db.Create(badge).Error
}

// GetByUser возвращает бейджи пользователя, новые первыми
func (r *BadgeRepo) GetByUser(userID uint) ([]entity.NFTBadge, error) {
	var badges []entity.NFTBadge
	err := r.db.Where("user_id = ?", userID).
		Order("minted_at DESC").
		Find(&badges).Error
	return badges, err
}

// QuizIDsByUser возвращает id викторин, за которые есть бейджи
func (r *BadgeRepo) QuizIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.NFTBadge{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("quiz_id", &ids).Error
	return ids, err
}
