package entity

import (
	"time"
)

// QuizResult представляет одну попытку прохождения викторины.
// Запись создается один раз и больше не изменяется.
type QuizResult struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index;index:idx_results_user_quiz" json:"user_id"`
	QuizID         uint      `gorm:"not null;index;index:idx_results_user_quiz" json:"quiz_id"`
	Score          int       `gorm:"not null;default:0" json:"score"`
	TotalQuestions int       `gorm:"not null;default:0" json:"total_questions"`
	IsPerfectScore bool      `gorm:"not null;default:false;index" json:"is_perfect_score"`
	CompletedAt    time.Time `gorm:"not null;index" json:"completed_at"`

	// Опциональные поля попытки
	TimeSpentSec     *int   `json:"time_spent,omitempty"`
	WalletAddress    string `gorm:"size:120;not null;default:''" json:"wallet_address,omitempty"`
	NFTTransactionID string `gorm:"size:120;not null;default:''" json:"nft_transaction_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizResult) TableName() string {
	return "quiz_results"
}

// Percentage возвращает долю правильных ответов (0..1)
func (r *QuizResult) Percentage() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions)
}
