package repository

import (
	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// VoteRepository определяет методы для чтения голосов.
// Мутации голосов выполняются в транзакции внутри VoteService.
type VoteRepository interface {
	// GetByUserAndQuiz возвращает голос пользователя за викторину или apperrors.ErrNotFound
	GetByUserAndQuiz(userID uint, quizID uint) (*entity.QuizVote, error)
	GetByUser(userID uint) ([]entity.QuizVote, error)
}
