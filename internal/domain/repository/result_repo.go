package repository

import (
	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// ResultRepository определяет методы для работы с результатами попыток
type ResultRepository interface {
	GetByUser(userID uint) ([]entity.QuizResult, error)
	// GetRecentByUser возвращает последние limit результатов пользователя,
	// отсортированные по времени завершения по убыванию
	GetRecentByUser(userID uint, limit int) ([]entity.QuizResult, error)
	// HasPerfectScore проверяет, есть ли у пользователя хотя бы один
	// идеальный результат по данной викторине
	HasPerfectScore(userID uint, quizID uint) (bool, error)
	// BestScore возвращает максимальный score пользователя по викторине.
	// nil - если попыток не было.
	BestScore(userID uint, quizID uint) (*int, error)
	CountByUser(userID uint) (int64, error)
}
