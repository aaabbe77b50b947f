package repository

import (
	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// Режимы сортировки списка викторин
const (
	QuizSortOrder      = "order"
	QuizSortVotes      = "votes"
	QuizSortNewest     = "newest"
	QuizSortDifficulty = "difficulty"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetFirstByOrder возвращает активную викторину с минимальным order_num
	GetFirstByOrder() (*entity.Quiz, error)
	// ListActive возвращает активные викторины в заданном порядке сортировки.
	// Неизвестный режим трактуется как сортировка по order_num.
	ListActive(sortBy string) ([]entity.Quiz, error)
	Update(quiz *entity.Quiz) error
	// SetUnlockRequirement точечно обновляет пререквизит без full Save
	SetUnlockRequirement(quizID uint, requirementID uint) error
	Count() (int64, error)
}
