package repository

import (
	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// BadgeRepository определяет методы для работы с NFT-бейджами
type BadgeRepository interface {
	Create(badge *entity.NFTBadge) error
	// GetByUser возвращает бейджи пользователя, отсортированные по minted_at по убыванию
	GetByUser(userID uint) ([]entity.NFTBadge, error)
	// QuizIDsByUser возвращает id викторин, за которые у пользователя есть бейджи
	QuizIDsByUser(userID uint) ([]uint, error)
}
