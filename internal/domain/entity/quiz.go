package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Константы сложности викторины
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
	DifficultyExpert       = "Expert"
)

// AIQuizOrder - позиция, под которой сохраняются AI-викторины (в конце списка)
const AIQuizOrder = 999

// LevelForDifficulty возвращает числовой уровень для строковой сложности
func LevelForDifficulty(difficulty string) int {
	switch difficulty {
	case DifficultyBeginner:
		return 1
	case DifficultyIntermediate:
		return 2
	case DifficultyAdvanced:
		return 3
	case DifficultyExpert:
		return 4
	default:
		return 1
	}
}

// IsValidDifficulty проверяет, что сложность входит в допустимый набор
func IsValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// QuestionList - пользовательский тип для хранения вопросов викторины в JSONB.
// Вопросы встроены в документ викторины, отдельной таблицы нет.
type QuestionList []Question

// Scan реализует интерфейс sql.Scanner для QuestionList
// Используется GORM для чтения JSONB данных из базы
func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*q = QuestionList{}
		return nil
	}

	return json.Unmarshal(bytes, q)
}

// Value реализует интерфейс driver.Valuer для QuestionList
func (q QuestionList) Value() (driver.Value, error) {
	if len(q) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(q)
}

// Quiz представляет викторину с встроенными вопросами
type Quiz struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:100;not null" json:"title"`
	Description string       `gorm:"size:500;not null;default:''" json:"description"`
	Level       int          `gorm:"not null;default:1;index" json:"level"`
	Difficulty  string       `gorm:"size:20;not null;index" json:"difficulty"`
	Category    string       `gorm:"size:100;not null;default:''" json:"category"`
	OrderNum    int          `gorm:"column:order_num;not null;index" json:"order"`
	IsActive    bool         `gorm:"not null;default:true" json:"is_active"`
	Questions   QuestionList `gorm:"type:jsonb;not null" json:"questions"`

	// UnlockRequirement - id викторины-пререквизита. Всегда ссылается на
	// предыдущую по порядку вставки викторину, поэтому цикл невозможен.
	UnlockRequirement *uint `gorm:"index" json:"unlock_requirement,omitempty"`

	// Денормализованные счетчики голосов. Инвариант: VoteScore == Upvotes - Downvotes.
	Upvotes   int `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int `gorm:"not null;default:0" json:"downvotes"`
	VoteScore int `gorm:"not null;default:0;index" json:"vote_score"`

	// Поля AI-сгенерированных викторин
	IsAIGenerated bool       `gorm:"not null;default:false" json:"is_ai_generated"`
	Topic         string     `gorm:"size:200;not null;default:''" json:"topic,omitempty"`
	GeneratedAt   *time.Time `json:"generated_at,omitempty"`
	CreatedBy     *uint      `gorm:"index" json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// TotalQuestions возвращает количество вопросов в викторине
func (q *Quiz) TotalQuestions() int {
	return len(q.Questions)
}

// Validate проверяет структуру викторины перед сохранением.
// Применяется в первую очередь к AI-сгенерированным викторинам.
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return fmt.Errorf("quiz title is required")
	}
	if !IsValidDifficulty(q.Difficulty) {
		return fmt.Errorf("invalid difficulty %q", q.Difficulty)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz must contain at least one question")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return fmt.Errorf("invalid question structure at index %d: %w", i, err)
		}
	}
	return nil
}
