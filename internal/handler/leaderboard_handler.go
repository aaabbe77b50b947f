package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/learnflow-api/internal/handler/dto"
	"github.com/yourusername/learnflow-api/internal/middleware"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
	"github.com/yourusername/learnflow-api/internal/service"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 200
)

// LeaderboardHandler обрабатывает запросы к таблице лидеров
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler создает новый обработчик лидерборда
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetTop возвращает топ пользователей (?limit=..., по умолчанию 50)
func (h *LeaderboardHandler) GetTop(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := h.leaderboardService.GetTopUsers(limit)
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLeaderboardResponse(entries))
}

// GetMyRank возвращает позицию текущего пользователя в рейтинге
func (h *LeaderboardHandler) GetMyRank(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	rank, err := h.leaderboardService.GetUserRank(userID)
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	c.JSON(http.StatusOK, rank)
}

// GetStats возвращает агрегатную статистику платформы
func (h *LeaderboardHandler) GetStats(c *gin.Context) {
	stats, err := h.leaderboardService.GetStats()
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Export отдает таблицу лидеров в формате XLSX
func (h *LeaderboardHandler) Export(c *gin.Context) {
	buf, err := h.leaderboardService.ExportXLSX()
	if err != nil {
		h.handleLeaderboardError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// handleLeaderboardError обрабатывает ошибки сервиса лидерборда
func (h *LeaderboardHandler) handleLeaderboardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[LeaderboardHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
