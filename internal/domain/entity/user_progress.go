package entity

import (
	"time"

	"github.com/lib/pq"
)

// UserProgress хранит агрегированную статистику пользователя.
// Одна строка на пользователя, создается лениво при первом результате.
type UserProgress struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	UserID                uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	CurrentLevel          int            `gorm:"not null;default:1;index" json:"current_level"`
	TotalQuizzesCompleted int            `gorm:"not null;default:0" json:"total_quizzes_completed"`
	TotalPerfectScores    int            `gorm:"not null;default:0;index" json:"total_perfect_scores"`
	TotalNFTsEarned       int            `gorm:"not null;default:0" json:"total_nfts_earned"`
	StreakCount           int            `gorm:"not null;default:0" json:"streak_count"`
	LastStreakDate        time.Time      `gorm:"not null" json:"last_streak_date"`
	LastActiveAt          time.Time      `gorm:"not null;index" json:"last_active_at"`
	Achievements          pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"achievements"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (UserProgress) TableName() string {
	return "user_progress"
}
