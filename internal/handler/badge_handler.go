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

// BadgeHandler обрабатывает запросы, связанные с NFT-значками
type BadgeHandler struct {
	badgeService *service.BadgeService
}

// NewBadgeHandler создает новый обработчик значков
func NewBadgeHandler(badgeService *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// MintBadgeRequest представляет запрос на выпуск значка
type MintBadgeRequest struct {
	QuizID        uint   `json:"quiz_id" binding:"required"`
	WalletAddress string `json:"wallet_address" binding:"required,max=120"`
}

// Mint выпускает NFT-значок за идеальное прохождение викторины
func (h *BadgeHandler) Mint(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req MintBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	badge, err := h.badgeService.MintBadge(c.Request.Context(), userID, req.QuizID, req.WalletAddress)
	if err != nil {
		h.handleBadgeError(c, err)
		return
	}

	log.Printf("[BadgeHandler] Пользователь ID=%d выпустил значок за викторину ID=%d (tx=%s)",
		userID, req.QuizID, badge.TransactionID)

	c.JSON(http.StatusCreated, badge)
}

// ListMine возвращает значки текущего пользователя
func (h *BadgeHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	badges, err := h.badgeService.GetUserBadges(userID)
	if err != nil {
		h.handleBadgeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges, "total": len(badges)})
}

// handleBadgeError обрабатывает ошибки сервиса значков
func (h *BadgeHandler) handleBadgeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrExternalService):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("[BadgeHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
