package entity

import (
	"time"
)

// Типы голосов
const (
	VoteTypeUpvote   = "upvote"
	VoteTypeDownvote = "downvote"
)

// IsValidVoteType проверяет тип голоса
func IsValidVoteType(voteType string) bool {
	return voteType == VoteTypeUpvote || voteType == VoteTypeDownvote
}

// QuizVote представляет голос пользователя за викторину.
// Не более одной записи на пару (user, quiz); повторный голос того же типа
// удаляет запись, голос другого типа меняет ее на месте.
type QuizVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_votes_user_quiz" json:"user_id"`
	QuizID    uint      `gorm:"not null;index;uniqueIndex:idx_votes_user_quiz" json:"quiz_id"`
	VoteType  string    `gorm:"size:10;not null" json:"vote_type"`
	VotedAt   time.Time `gorm:"not null" json:"voted_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizVote) TableName() string {
	return "quiz_votes"
}
