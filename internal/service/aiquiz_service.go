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

// Границы числа вопросов AI-викторины
const (
	MinAIQuestions = 1
	MaxAIQuestions = 20
)

// GenerateQuizInput описывает запрос на генерацию викторины
type GenerateQuizInput struct {
	Topic        string
	Difficulty   string
	NumQuestions int
	Category     string
}

// AIQuizService предоставляет генерацию пользовательских викторин.
// При сбое внешнего генератора запрос не падает: используется
// детерминированный fallback-генератор.
type AIQuizService struct {
	quizRepo  repository.QuizRepository
	cacheRepo repository.CacheRepository
	generator QuizGenerator
	fallback  QuizGenerator
	hub       *ws.Hub

	// maxPerHour - лимит генераций на пользователя в час, 0 отключает лимит
	maxPerHour int
}

// NewAIQuizService создает новый сервис AI-викторин
func NewAIQuizService(
	quizRepo repository.QuizRepository,
	cacheRepo repository.CacheRepository,
	generator QuizGenerator,
	hub *ws.Hub,
	maxPerHour int,
) *AIQuizService {
	return &AIQuizService{
		quizRepo:   quizRepo,
		cacheRepo:  cacheRepo,
		generator:  generator,
		fallback:   FallbackGenerator{},
		hub:        hub,
		maxPerHour: maxPerHour,
	}
}

// GenerateQuiz генерирует и сохраняет новую AI-викторину от имени пользователя.
// Викторина попадает в конец списка (order_num = 999) и не участвует
// в цепочке разблокировки.
func (s *AIQuizService) GenerateQuiz(ctx context.Context, userID uint, input GenerateQuizInput) (*entity.Quiz, error) {
	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", apperrors.ErrValidation)
	}
	if !entity.IsValidDifficulty(input.Difficulty) {
		return nil, fmt.Errorf("%w: invalid difficulty %q", apperrors.ErrValidation, input.Difficulty)
	}
	if input.NumQuestions < MinAIQuestions || input.NumQuestions > MaxAIQuestions {
		return nil, fmt.Errorf("%w: num_questions must be between %d and %d",
			apperrors.ErrValidation, MinAIQuestions, MaxAIQuestions)
	}

	if err := s.checkRateLimit(userID); err != nil {
		return nil, err
	}

	generated, err := s.generator.Generate(ctx, topic, input.Difficulty, input.NumQuestions)
	if err != nil {
		log.Printf("[AIQuizService] Генерация через внешний API не удалась, используем fallback: %v", err)
		generated, err = s.fallback.Generate(ctx, topic, input.Difficulty, input.NumQuestions)
		if err != nil {
			return nil, fmt.Errorf("fallback generation failed: %w", err)
		}
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "AI Generated"
	}

	now := time.Now()
	quiz := &entity.Quiz{
		Title:         generated.Title,
		Description:   generated.Description,
		Level:         entity.LevelForDifficulty(input.Difficulty),
		Difficulty:    input.Difficulty,
		Category:      category,
		OrderNum:      entity.AIQuizOrder,
		IsActive:      true,
		Questions:     generated.Questions,
		IsAIGenerated: true,
		Topic:         topic,
		GeneratedAt:   &now,
		CreatedBy:     &userID,
	}
	if quiz.Title == "" {
		quiz.Title = fmt.Sprintf("AI Quiz: %s", topic)
	}
	if quiz.Description == "" {
		quiz.Description = fmt.Sprintf("An AI-generated %s level quiz about %s",
			strings.ToLower(input.Difficulty), topic)
	}

	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to save generated quiz: %w", err)
	}

	log.Printf("[AIQuizService] Пользователь %d сгенерировал викторину %d по теме %q (%d вопросов)",
		userID, quiz.ID, topic, len(quiz.Questions))

	if s.hub != nil {
		s.hub.BroadcastEvent(ws.QUIZ_GENERATED, map[string]interface{}{
			"quiz_id": quiz.ID,
			"title":   quiz.Title,
			"topic":   quiz.Topic,
		})
	}

	return quiz, nil
}

// checkRateLimit применяет часовой лимит генераций на пользователя.
// Ошибки Redis не блокируют генерацию: лимит деградирует, сервис работает.
func (s *AIQuizService) checkRateLimit(userID uint) error {
	if s.maxPerHour <= 0 || s.cacheRepo == nil {
		return nil
	}

	key := fmt.Sprintf("ai:generate:%d", userID)
	count, err := s.cacheRepo.IncrementWithTTL(key, time.Hour)
	if err != nil {
		log.Printf("[AIQuizService] Ошибка проверки лимита генераций: %v", err)
		return nil
	}
	if count > int64(s.maxPerHour) {
		return fmt.Errorf("%w: quiz generation limit of %d per hour exceeded",
			apperrors.ErrForbidden, s.maxPerHour)
	}
	return nil
}
