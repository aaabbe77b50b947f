package dto

import (
	"time"

	"github.com/yourusername/learnflow-api/internal/service"
)

// LeaderboardUserDTO представляет одного пользователя в лидерборде
type LeaderboardUserDTO struct {
	Rank             int       `json:"rank"`              // Место пользователя в рейтинге
	UserID           uint      `json:"user_id"`           // ID пользователя
	Name             string    `json:"name"`              // Отображаемое имя пользователя
	TotalScore       int       `json:"total_score"`       // Взвешенный суммарный балл
	CurrentLevel     int       `json:"current_level"`     // Текущий уровень
	QuizzesCompleted int       `json:"quizzes_completed"` // Количество завершенных викторин
	PerfectScores    int       `json:"perfect_scores"`    // Количество идеальных результатов
	NFTBadges        int       `json:"nft_badges"`        // Количество заработанных NFT-значков
	Streak           int       `json:"streak"`            // Текущая серия дней
	LastActiveAt     time.Time `json:"last_active_at"`    // Время последней активности
}

// LeaderboardResponse представляет ответ со списком лидеров
type LeaderboardResponse struct {
	Users []*LeaderboardUserDTO `json:"users"` // Список пользователей в порядке убывания балла
	Total int                   `json:"total"` // Количество пользователей в ответе
}

// NewLeaderboardResponse преобразует записи сервиса в транспортный формат.
// Email не включается в публичный лидерборд.
func NewLeaderboardResponse(entries []service.LeaderboardEntry) *LeaderboardResponse {
	users := make([]*LeaderboardUserDTO, 0, len(entries))
	for _, e := range entries {
		users = append(users, &LeaderboardUserDTO{
			Rank:             e.Rank,
			UserID:           e.UserID,
			Name:             e.Name,
			TotalScore:       e.TotalScore,
			CurrentLevel:     e.CurrentLevel,
			QuizzesCompleted: e.TotalQuizzesCompleted,
			PerfectScores:    e.TotalPerfectScores,
			NFTBadges:        e.TotalNFTsEarned,
			Streak:           e.StreakCount,
			LastActiveAt:     e.LastActiveAt,
		})
	}
	return &LeaderboardResponse{Users: users, Total: len(users)}
}
