package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
)

// VoteRepo реализует repository.VoteRepository
type VoteRepo struct {
	db *gorm.DB
}

// NewVoteRepo создает новый репозиторий голосов
func NewVoteRepo(db *gorm.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// GetByUserAndQuiz возвращает голос пользователя за викторину
func (r *VoteRepo) GetByUserAndQuiz(userID uint, quizID uint) (*entity.QuizVote, error) {
	var vote entity.QuizVote
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &vote, nil
}

// GetByUser возвращает все голоса пользователя
func (r *VoteRepo) GetByUser(userID uint) ([]entity.QuizVote, error) {
	var votes []entity.QuizVote
	err := r.db.Where("user_id = ?", userID).Find(&votes).Error
	return votes, err
}
