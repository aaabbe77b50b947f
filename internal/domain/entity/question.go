package entity

import "fmt"

// QuestionOptionCount - у каждого вопроса ровно 4 варианта ответа
const QuestionOptionCount = 4

// Question представляет вопрос, встроенный в документ викторины.
// Хранится внутри JSONB-поля quizzes.questions, отдельной таблицы нет.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Validate проверяет инварианты вопроса: ровно 4 варианта, корректный индекс ответа
func (q *Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question text is required")
	}
	if len(q.Options) != QuestionOptionCount {
		return fmt.Errorf("question must have exactly %d options, got %d", QuestionOptionCount, len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= QuestionOptionCount {
		return fmt.Errorf("correct answer index %d out of range [0,%d]", q.CorrectAnswer, QuestionOptionCount-1)
	}
	return nil
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectAnswer
}
