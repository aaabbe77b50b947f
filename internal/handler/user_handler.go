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

// UserHandler обрабатывает запросы к профилю пользователя
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик профиля
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateNameRequest представляет запрос на изменение отображаемого имени
type UpdateNameRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// GetProgress возвращает профиль прогресса текущего пользователя
func (h *UserHandler) GetProgress(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetAnalytics возвращает аналитический отчет о прогрессе пользователя
func (h *UserHandler) GetAnalytics(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	insights, err := h.userService.GetAnalytics(userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

// UpdateName изменяет отображаемое имя текущего пользователя
func (h *UserHandler) UpdateName(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name, err := h.userService.UpdateDisplayName(userID, req.DisplayName)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	log.Printf("[UserHandler] Пользователь ID=%d изменил отображаемое имя", userID)
	c.JSON(http.StatusOK, gin.H{"display_name": name})
}

// handleUserError обрабатывает ошибки сервиса профиля
func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("[UserHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
