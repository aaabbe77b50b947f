package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	"github.com/yourusername/learnflow-api/internal/domain/repository"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
	"github.com/yourusername/learnflow-api/internal/ws"
)

// BadgeWithQuiz дополняет бейдж данными викторины, за которую он выдан
type BadgeWithQuiz struct {
	entity.NFTBadge
	Quiz *BadgeQuizInfo `json:"quiz"`
}

// BadgeQuizInfo - сокращенная информация о викторине для списка бейджей
type BadgeQuizInfo struct {
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
	Level      int    `json:"level"`
}

// BadgeService предоставляет выпуск NFT-бейджей за идеальные результаты
type BadgeService struct {
	badgeRepo  repository.BadgeRepository
	resultRepo repository.ResultRepository
	quizRepo   repository.QuizRepository
	userRepo   repository.UserRepository
	minter     BadgeMinter
	email      EmailService
	hub        *ws.Hub
}

// NewBadgeService создает новый сервис бейджей
func NewBadgeService(
	badgeRepo repository.BadgeRepository,
	resultRepo repository.ResultRepository,
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	minter BadgeMinter,
	email EmailService,
	hub *ws.Hub,
) *BadgeService {
	return &BadgeService{
		badgeRepo:  badgeRepo,
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
		userRepo:   userRepo,
		minter:     minter,
		email:      email,
		hub:        hub,
	}
}

// MintBadge выпускает бейдж пользователю за идеальное прохождение викторины.
// Право на бейдж проверяется по сохраненным результатам. Ошибка минтинга
// возвращается наружу как есть: fallback-записи не создаются.
func (s *BadgeService) MintBadge(ctx context.Context, userID, quizID uint, walletAddress string) (*entity.NFTBadge, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, fmt.Errorf("%w: wallet address is required", apperrors.ErrValidation)
	}

	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	hasPerfect, err := s.resultRepo.HasPerfectScore(userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to check perfect score: %w", err)
	}
	if !hasPerfect {
		return nil, fmt.Errorf("%w: badge requires a perfect score on the quiz", apperrors.ErrForbidden)
	}

	// Один бейдж на пару (пользователь, викторина)
	mintedQuizIDs, err := s.badgeRepo.QuizIDsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing badges: %w", err)
	}
	for _, id := range mintedQuizIDs {
		if id == quizID {
			return nil, fmt.Errorf("%w: badge for this quiz is already minted", apperrors.ErrConflict)
		}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.minter.Mint(ctx, MintRequest{
		WalletAddress:  walletAddress,
		StudentName:    user.DisplayNameOrDefault(),
		QuizTitle:      quiz.Title,
		Score:          quiz.TotalQuestions(),
		TotalQuestions: quiz.TotalQuestions(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare NFT transaction: %w", err)
	}

	badge := &entity.NFTBadge{
		UserID:        userID,
		QuizID:        quizID,
		TransactionID: receipt.TransactionID,
		PolicyID:      receipt.PolicyID,
		AssetName:     receipt.AssetName,
		WalletAddress: walletAddress,
		Metadata:      receipt.Metadata,
		MintedAt:      time.Now(),
	}
	if err := s.badgeRepo.Create(badge); err != nil {
		return nil, fmt.Errorf("failed to save badge: %w", err)
	}

	log.Printf("[BadgeService] Выпущен бейдж %s для пользователя %d за викторину %d (tx=%s)",
		badge.AssetName, userID, quizID, badge.TransactionID)

	// Уведомление по email отправляется best-effort: сбой не откатывает минтинг
	if s.email != nil {
		if err := s.email.SendBadgeMinted(ctx, user.Email, user.DisplayNameOrDefault(), quiz.Title, receipt.ExplorerURL); err != nil {
			log.Printf("[BadgeService] Не удалось отправить уведомление о бейдже пользователю %d: %v", userID, err)
		}
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(ws.BADGE_MINTED, map[string]interface{}{
			"user_id":    userID,
			"quiz_id":    quizID,
			"asset_name": badge.AssetName,
		})
	}

	return badge, nil
}

// GetUserBadges возвращает бейджи пользователя с данными викторин,
// отсортированные по времени выпуска по убыванию
func (s *BadgeService) GetUserBadges(userID uint) ([]BadgeWithQuiz, error) {
	badges, err := s.badgeRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}

	result := make([]BadgeWithQuiz, len(badges))
	for i, badge := range badges {
		entry := BadgeWithQuiz{NFTBadge: badge}
		// Удаленная викторина не ломает список бейджей
		if quiz, err := s.quizRepo.GetByID(badge.QuizID); err == nil {
			entry.Quiz = &BadgeQuizInfo{
				Title:      quiz.Title,
				Difficulty: quiz.Difficulty,
				Category:   quiz.Category,
				Level:      quiz.Level,
			}
		}
		result[i] = entry
	}
	return result, nil
}
