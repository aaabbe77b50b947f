package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
	"github.com/yourusername/learnflow-api/internal/service/progression"
	"github.com/yourusername/learnflow-api/internal/ws"
)

// VoteResult описывает состояние голосования после применения голоса
type VoteResult struct {
	// UserVote - актуальный голос пользователя (nil после снятия)
	UserVote  *string `json:"user_vote"`
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	VoteScore int     `json:"vote_score"`
}

// VoteService предоставляет методы для голосования за викторины.
// Все мутации выполняются в транзакции с блокировкой строки викторины,
// счетчики пересчитываются централизованно в progression.ApplyVote.
type VoteService struct {
	db  *gorm.DB
	hub *ws.Hub
}

// NewVoteService создает новый сервис голосования
func NewVoteService(db *gorm.DB, hub *ws.Hub) *VoteService {
	return &VoteService{db: db, hub: hub}
}

// Vote применяет голос пользователя за викторину по правилу toggle:
// новый голос создается, повторный того же типа снимается, голос другого
// типа переключается. Возвращает актуальные счетчики.
func (s *VoteService) Vote(userID, quizID uint, voteType string) (*VoteResult, error) {
	if !entity.IsValidVoteType(voteType) {
		return nil, fmt.Errorf("%w: invalid vote type %q", apperrors.ErrValidation, voteType)
	}

	var outcome *VoteResult

	// --- Начало транзакции ---
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during Vote transaction: %v", r)
		}
	}()

	if tx.Error != nil {
		log.Printf("Error starting transaction in Vote: %v", tx.Error)
		return nil, tx.Error
	}

	// Блокируем строку викторины: конкурентные голоса за один quiz
	// сериализуются, счетчики не разъезжаются
	var quiz entity.Quiz
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&quiz, quizID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz with id %d not found", apperrors.ErrNotFound, quizID)
		}
		return nil, fmt.Errorf("failed to lock quiz: %w", err)
	}

	var existing entity.QuizVote
	var existingType *string
	err := tx.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&existing).Error
	switch {
	case err == nil:
		existingType = &existing.VoteType
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Голоса еще нет
	default:
		tx.Rollback()
		return nil, fmt.Errorf("failed to load existing vote: %w", err)
	}

	action, tally := progression.ApplyVote(existingType, voteType, progression.Tally{
		Upvotes:   quiz.Upvotes,
		Downvotes: quiz.Downvotes,
		VoteScore: quiz.VoteScore,
	})

	switch action {
	case progression.VoteInsert:
		vote := &entity.QuizVote{
			UserID:   userID,
			QuizID:   quizID,
			VoteType: voteType,
			VotedAt:  time.Now(),
		}
		if err := tx.Create(vote).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating vote in transaction: %v", err)
			return nil, fmt.Errorf("failed to create vote: %w", err)
		}
		outcome = &VoteResult{UserVote: &vote.VoteType}

	case progression.VoteRemove:
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			log.Printf("Error deleting vote in transaction: %v", err)
			return nil, fmt.Errorf("failed to remove vote: %w", err)
		}
		outcome = &VoteResult{UserVote: nil}

	case progression.VoteFlip:
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"vote_type": voteType,
			"voted_at":  time.Now(),
		}).Error; err != nil {
			tx.Rollback()
			log.Printf("Error flipping vote in transaction: %v", err)
			return nil, fmt.Errorf("failed to flip vote: %w", err)
		}
		outcome = &VoteResult{UserVote: &voteType}
	}

	// Обновляем денормализованные счетчики (внутри той же транзакции)
	if err := tx.Model(&quiz).Updates(map[string]interface{}{
		"upvotes":    tally.Upvotes,
		"downvotes":  tally.Downvotes,
		"vote_score": tally.VoteScore,
	}).Error; err != nil {
		tx.Rollback()
		log.Printf("Error updating vote tallies in transaction: %v", err)
		return nil, fmt.Errorf("failed to update vote tallies: %w", err)
	}

	// --- Коммит транзакции ---
	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing Vote transaction: %v", err)
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	outcome.Upvotes = tally.Upvotes
	outcome.Downvotes = tally.Downvotes
	outcome.VoteScore = tally.VoteScore

	// Уведомляем клиентов об обновлении счетчиков (вне транзакции)
	if s.hub != nil {
		s.hub.BroadcastEvent(ws.VOTE_UPDATE, map[string]interface{}{
			"quiz_id":    quizID,
			"upvotes":    tally.Upvotes,
			"downvotes":  tally.Downvotes,
			"vote_score": tally.VoteScore,
		})
	}

	return outcome, nil
}
