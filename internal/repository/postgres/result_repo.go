package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// GetByUser возвращает все результаты пользователя
func (r *ResultRepo) GetByUser(userID uint) ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	err := r.db.Where("user_id = ?", userID).
		Order("completed_at ASC").
		Find(&results).Error
	return results, err
}

// GetRecentByUser возвращает последние limit результатов пользователя
func (r *ResultRepo) GetRecentByUser(userID uint, limit int) ([]entity.QuizResult, error) {
	var results []entity.QuizResult
	err := r.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}

// HasPerfectScore проверяет наличие идеального результата по викторине
func (r *ResultRepo) HasPerfectScore(userID uint, quizID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.QuizResult{}).
		Where("user_id = ? AND quiz_id = ? AND is_perfect_score = ?", userID, quizID, true).
		Count(&count).Error
	return count > 0, err
}

// BestScore возвращает максимальный score пользователя по викторине.
// Выбирается результат с наибольшим score, не сумма и не среднее.
func (r *ResultRepo) BestScore(userID uint, quizID uint) (*int, error) {
	var result entity.QuizResult
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("score DESC").
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Попыток не было - это не ошибка
		}
		return nil, err
	}
	score := result.Score
	return &score, nil
}

// CountByUser возвращает количество попыток пользователя
func (r *ResultRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuizResult{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
