package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/learnflow-api/internal/middleware"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
	"github.com/yourusername/learnflow-api/internal/service"
)

// AIQuizHandler обрабатывает запросы на генерацию викторин
type AIQuizHandler struct {
	aiQuizService *service.AIQuizService
}

// NewAIQuizHandler создает новый обработчик генерации викторин
func NewAIQuizHandler(aiQuizService *service.AIQuizService) *AIQuizHandler {
	return &AIQuizHandler{aiQuizService: aiQuizService}
}

// GenerateQuizRequest представляет запрос на генерацию викторины
type GenerateQuizRequest struct {
	Topic        string `json:"topic" binding:"required,max=200"`
	Difficulty   string `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced Expert"`
	NumQuestions int    `json:"num_questions" binding:"required,min=1,max=20"`
	Category     string `json:"category" binding:"omitempty,max=100"`
}

// Generate создает новую викторину по заданной теме
func (h *AIQuizHandler) Generate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.aiQuizService.GenerateQuiz(c.Request.Context(), userID, service.GenerateQuizInput{
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		NumQuestions: req.NumQuestions,
		Category:     req.Category,
	})
	if err != nil {
		h.handleGenerateError(c, err)
		return
	}

	log.Printf("[AIQuizHandler] Пользователь ID=%d сгенерировал викторину ID=%d по теме %q",
		userID, quiz.ID, quiz.Topic)

	c.JSON(http.StatusCreated, quiz)
}

// handleGenerateError обрабатывает ошибки генерации викторин
func (h *AIQuizHandler) handleGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrExternalService):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("[AIQuizHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
