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

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
	voteService   *service.VoteService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(
	quizService *service.QuizService,
	resultService *service.ResultService,
	voteService *service.VoteService,
) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
		voteService:   voteService,
	}
}

// SubmitResultRequest представляет запрос на сохранение результата прохождения
type SubmitResultRequest struct {
	Score            int    `json:"score" binding:"min=0"`
	TotalQuestions   int    `json:"total_questions" binding:"required,min=1"`
	TimeSpentSec     *int   `json:"time_spent_sec" binding:"omitempty,min=0"`
	WalletAddress    string `json:"wallet_address" binding:"omitempty,max=120"`
	NFTTransactionID string `json:"nft_transaction_id" binding:"omitempty,max=128"`
}

// VoteRequest представляет запрос на голосование за викторину
type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required,oneof=upvote downvote"`
}

// ListQuizzes возвращает список викторин со статусом доступности.
// Поддерживает сортировку (?sort_by=order|votes|newest|difficulty) и поиск (?search=...)
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	sortBy := c.DefaultQuery("sort_by", "order")
	search := c.Query("search")
	userID := middleware.OptionalUserID(c)

	quizzes, err := h.quizService.ListQuizzes(userID, sortBy, search)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes, "total": len(quizzes)})
}

// GetQuiz возвращает викторину по ID, если она доступна пользователю
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID := middleware.OptionalUserID(c)

	quiz, err := h.quizService.GetQuiz(quizID, userID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// SubmitResult сохраняет результат прохождения викторины и обновляет прогресс
func (h *QuizHandler) SubmitResult(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.resultService.SubmitResult(userID, quizID, service.SubmitResultInput{
		Score:            req.Score,
		TotalQuestions:   req.TotalQuestions,
		TimeSpentSec:     req.TimeSpentSec,
		WalletAddress:    req.WalletAddress,
		NFTTransactionID: req.NFTTransactionID,
	})
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	log.Printf("[QuizHandler] Пользователь ID=%d завершил викторину ID=%d со счетом %d/%d",
		userID, quizID, result.Score, result.TotalQuestions)

	c.JSON(http.StatusCreated, result)
}

// Vote переключает голос пользователя за викторину
func (h *QuizHandler) Vote(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.voteService.Vote(userID, quizID, req.VoteType)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyVote возвращает голос текущего пользователя за викторину
func (h *QuizHandler) GetMyVote(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	voteType, err := h.quizService.GetUserVote(userID, quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "vote_type": voteType})
}

// GetVoteStats возвращает счетчики голосов викторины (публичный маршрут)
func (h *QuizHandler) GetVoteStats(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	stats, err := h.quizService.GetVoteStats(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// InitializeQuizzes создает стартовый набор викторин (только для администраторов)
func (h *QuizHandler) InitializeQuizzes(c *gin.Context) {
	created, err := h.quizService.InitializeQuizzes()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	if created == 0 {
		c.JSON(http.StatusOK, gin.H{"created": 0, "message": "Quizzes already initialized"})
		return
	}

	log.Printf("[QuizHandler] Инициализировано %d стартовых викторин", created)
	c.JSON(http.StatusCreated, gin.H{"created": created})
}

// handleQuizError обрабатывает ошибки сервисов викторин
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("[QuizHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
