package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	"github.com/yourusername/learnflow-api/internal/domain/repository"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
	"github.com/yourusername/learnflow-api/internal/service/progression"
	"github.com/yourusername/learnflow-api/internal/ws"
)

// SubmitResultInput описывает завершенную попытку прохождения викторины
type SubmitResultInput struct {
	Score            int
	TotalQuestions   int
	TimeSpentSec     *int
	WalletAddress    string
	NFTTransactionID string
}

// ResultService предоставляет методы для записи результатов и обновления прогресса
type ResultService struct {
	resultRepo repository.ResultRepository
	quizRepo   repository.QuizRepository
	db         *gorm.DB
	hub        *ws.Hub
}

// NewResultService создает новый сервис результатов
func NewResultService(
	resultRepo repository.ResultRepository,
	quizRepo repository.QuizRepository,
	db *gorm.DB,
	hub *ws.Hub,
) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
		db:         db,
		hub:        hub,
	}
}

// SubmitResult сохраняет результат попытки и обновляет прогресс пользователя.
// Запись результата и обновление прогресса выполняются в одной транзакции:
// частичное применение (результат есть, прогресс не обновлен) невозможно.
func (s *ResultService) SubmitResult(userID, quizID uint, input SubmitResultInput) (*entity.QuizResult, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	if input.TotalQuestions != quiz.TotalQuestions() {
		return nil, fmt.Errorf("%w: total_questions mismatch: got %d, quiz has %d",
			apperrors.ErrValidation, input.TotalQuestions, quiz.TotalQuestions())
	}
	if input.Score < 0 || input.Score > input.TotalQuestions {
		return nil, fmt.Errorf("%w: score %d out of range [0, %d]",
			apperrors.ErrValidation, input.Score, input.TotalQuestions)
	}

	// Результат по заблокированной викторине не принимается
	if quiz.UnlockRequirement != nil {
		hasPerfect, err := s.resultRepo.HasPerfectScore(userID, *quiz.UnlockRequirement)
		if err != nil {
			return nil, fmt.Errorf("failed to check unlock requirement: %w", err)
		}
		if !hasPerfect {
			return nil, fmt.Errorf("%w: quiz is locked", apperrors.ErrForbidden)
		}
	}

	now := time.Now()
	result := &entity.QuizResult{
		UserID:           userID,
		QuizID:           quizID,
		Score:            input.Score,
		TotalQuestions:   input.TotalQuestions,
		IsPerfectScore:   input.Score == input.TotalQuestions,
		CompletedAt:      now,
		TimeSpentSec:     input.TimeSpentSec,
		WalletAddress:    input.WalletAddress,
		NFTTransactionID: input.NFTTransactionID,
	}
	earnedNFT := input.NFTTransactionID != ""

	// --- Начало транзакции ---
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during SubmitResult transaction: %v", r)
		}
	}()

	if tx.Error != nil {
		log.Printf("Error starting transaction in SubmitResult: %v", tx.Error)
		return nil, tx.Error
	}

	// Сохраняем результат (внутри транзакции)
	if err := tx.Create(result).Error; err != nil {
		tx.Rollback()
		log.Printf("Error saving result in transaction: %v", err)
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	// Создаем или обновляем прогресс (внутри той же транзакции)
	var progress entity.UserProgress
	err = tx.Where("user_id = ?", userID).First(&progress).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		newProgress := progression.NewProgress(userID, quiz.Level, result.IsPerfectScore, earnedNFT, now)
		if err := tx.Create(newProgress).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating progress in transaction: %v", err)
			return nil, fmt.Errorf("failed to create progress: %w", err)
		}
	case err != nil:
		tx.Rollback()
		log.Printf("Error loading progress in transaction: %v", err)
		return nil, fmt.Errorf("failed to load progress: %w", err)
	default:
		progression.ApplyResult(&progress, quiz.Level, result.IsPerfectScore, earnedNFT, now)
		if err := tx.Save(&progress).Error; err != nil {
			tx.Rollback()
			log.Printf("Error updating progress in transaction: %v", err)
			return nil, fmt.Errorf("failed to update progress: %w", err)
		}
	}

	// --- Коммит транзакции ---
	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing SubmitResult transaction: %v", err)
		return nil, fmt.Errorf("failed to commit result: %w", err)
	}

	log.Printf("[ResultService] Пользователь %d завершил викторину %d: %d/%d (perfect=%t)",
		userID, quizID, result.Score, result.TotalQuestions, result.IsPerfectScore)

	// Уведомляем клиентов об изменении таблицы лидеров (вне транзакции)
	if s.hub != nil {
		s.hub.BroadcastEvent(ws.LEADERBOARD_UPDATE, map[string]interface{}{
			"user_id": userID,
			"quiz_id": quizID,
		})
	}

	return result, nil
}
