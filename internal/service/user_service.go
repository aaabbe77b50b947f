package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	"github.com/yourusername/learnflow-api/internal/domain/repository"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
)

// UserProfile объединяет прогресс пользователя с последними результатами
// и бейджами
type UserProfile struct {
	Progress         *entity.UserProgress `json:"progress"`
	RecentResults    []entity.QuizResult  `json:"recent_results"`
	NFTBadges        []entity.NFTBadge    `json:"nft_badges"`
	TotalQuizzesTaken int64               `json:"total_quizzes_taken"`
	// AverageScore - средняя доля правильных ответов по всем попыткам, [0, 1]
	AverageScore float64 `json:"average_score"`
}

// UserService предоставляет методы для работы с профилем пользователя
type UserService struct {
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	resultRepo   repository.ResultRepository
	badgeRepo    repository.BadgeRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	resultRepo repository.ResultRepository,
	badgeRepo repository.BadgeRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		progressRepo: progressRepo,
		resultRepo:   resultRepo,
		badgeRepo:    badgeRepo,
	}
}

// GetProfile возвращает сводный профиль: прогресс, последние 5 результатов,
// бейджи и среднюю долю правильных ответов. Отсутствие записи прогресса -
// нормальное состояние нового пользователя, Progress остается nil.
func (s *UserService) GetProfile(userID uint) (*UserProfile, error) {
	profile := &UserProfile{}

	progress, err := s.progressRepo.GetByUserID(userID)
	switch {
	case err == nil:
		profile.Progress = progress
	case errors.Is(err, apperrors.ErrNotFound):
		// Пользователь еще не проходил викторин
	default:
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	results, err := s.resultRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	profile.TotalQuizzesTaken = int64(len(results))
	profile.AverageScore = averageScore(results)

	recent, err := s.resultRepo.GetRecentByUser(userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent results: %w", err)
	}
	profile.RecentResults = recent

	badges, err := s.badgeRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	profile.NFTBadges = badges

	return profile, nil
}

// UpdateDisplayName меняет отображаемое имя пользователя.
// Возвращает нормализованное (обрезанное) имя.
func (s *UserService) UpdateDisplayName(userID uint, name string) (string, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return "", err
	}

	trimmed, err := entity.ValidateDisplayName(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.userRepo.UpdateDisplayName(userID, trimmed); err != nil {
		return "", fmt.Errorf("failed to update display name: %w", err)
	}

	log.Printf("[UserService] Пользователь %d сменил отображаемое имя", userID)
	return trimmed, nil
}

// GetAnalytics возвращает детерминированные инсайты по прогрессу пользователя
func (s *UserService) GetAnalytics(userID uint) (*ProgressInsights, error) {
	var progress *entity.UserProgress
	p, err := s.progressRepo.GetByUserID(userID)
	switch {
	case err == nil:
		progress = p
	case errors.Is(err, apperrors.ErrNotFound):
		// Инсайты считаются и без записи прогресса
	default:
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	results, err := s.resultRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	insights := BuildInsights(progress, results)
	return &insights, nil
}

// averageScore считает среднюю долю правильных ответов по всем попыткам
func averageScore(results []entity.QuizResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range results {
		if r.TotalQuestions > 0 {
			sum += float64(r.Score) / float64(r.TotalQuestions)
		}
	}
	return sum / float64(len(results))
}
