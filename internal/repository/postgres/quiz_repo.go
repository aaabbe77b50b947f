package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	"github.com/yourusername/learnflow-api/internal/domain/repository"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetFirstByOrder возвращает активную викторину с минимальным order_num
func (r *QuizRepo) GetFirstByOrder() (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Where("is_active = ?", true).
		Order("order_num ASC").
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// ListActive возвращает активные викторины в заданном порядке сортировки
func (r *QuizRepo) ListActive(sortBy string) ([]entity.Quiz, error) {
	query := r.db.Where("is_active = ?", true)

	switch sortBy {
	case repository.QuizSortVotes:
		query = query.Order("vote_score DESC, order_num ASC")
	case repository.QuizSortNewest:
		query = query.Order("created_at DESC")
	case repository.QuizSortDifficulty:
		query = query.Order("level ASC, order_num ASC")
	default:
		// repository.QuizSortOrder и все неизвестные режимы
		query = query.Order("order_num ASC")
	}

	var quizzes []entity.Quiz
	err := query.Find(&quizzes).Error
	return quizzes, err
}

// Update сохраняет викторину целиком
func (r *QuizRepo) Update(quiz *entity.Quiz) error {
	return r.db.Save(quiz).Error
}

// SetUnlockRequirement точечно обновляет пререквизит без full Save
func (r *QuizRepo) SetUnlockRequirement(quizID uint, requirementID uint) error {
	return r.db.Model(&entity.Quiz{}).
		Where("id = ?", quizID).
		Update("unlock_requirement", requirementID).Error
}

// Count возвращает общее количество викторин
func (r *QuizRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Quiz{}).Count(&count).Error
	return count, err
}
