package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
)

// GeneratedQuiz - сырой результат генерации до сохранения в базу
type GeneratedQuiz struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Questions   entity.QuestionList `json:"questions"`
}

// QuizGenerator генерирует викторину по теме и сложности
type QuizGenerator interface {
	Generate(ctx context.Context, topic, difficulty string, numQuestions int) (*GeneratedQuiz, error)
}

// GeminiGenerator генерирует викторины через Gemini API
type GeminiGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiGenerator создает генератор на базе Gemini API
func NewGeminiGenerator(apiKey, model string, timeout time.Duration) *GeminiGenerator {
	return &GeminiGenerator{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: timeout},
	}
}

// Структуры запроса/ответа generateContent
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate вызывает Gemini API и валидирует полученную структуру викторины
func (g *GeminiGenerator) Generate(ctx context.Context, topic, difficulty string, numQuestions int) (*GeneratedQuiz, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is not configured", apperrors.ErrExternalService)
	}

	prompt := buildQuizPrompt(topic, difficulty, numQuestions)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini request failed: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read gemini response: %v", apperrors.ErrExternalService, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gemini returned status %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode gemini response: %v", apperrors.ErrExternalService, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: gemini returned no candidates", apperrors.ErrExternalService)
	}

	quiz, err := parseGeneratedQuiz(parsed.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// buildQuizPrompt строит промпт генерации викторины
func buildQuizPrompt(topic, difficulty string, numQuestions int) string {
	lower := strings.ToLower(difficulty)
	return fmt.Sprintf(`Generate a %s level quiz about "%s" with exactly %d questions.

Requirements:
- Each question should have exactly 4 multiple choice options
- Only one option should be correct
- Include a brief explanation for each correct answer
- Questions should be appropriate for %s level learners
- Focus on practical knowledge and understanding
- Make questions engaging and educational

Please respond with a valid JSON object in this exact format:
{
  "title": "Quiz title here",
  "description": "Brief description of the quiz",
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": 0,
      "explanation": "Explanation of why this answer is correct"
    }
  ]
}

Topic: %s
Difficulty: %s
Number of questions: %d`, lower, topic, numQuestions, lower, topic, difficulty, numQuestions)
}

// parseGeneratedQuiz извлекает JSON-объект из текста ответа модели
// (модель может обернуть его в markdown) и валидирует структуру вопросов
func parseGeneratedQuiz(text string) (*GeneratedQuiz, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found in model response", apperrors.ErrExternalService)
	}

	var quiz GeneratedQuiz
	if err := json.Unmarshal([]byte(text[start:end+1]), &quiz); err != nil {
		return nil, fmt.Errorf("%w: failed to parse model response: %v", apperrors.ErrExternalService, err)
	}

	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: model returned no questions", apperrors.ErrExternalService)
	}
	for i := range quiz.Questions {
		if err := quiz.Questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid question structure at index %d: %v", apperrors.ErrExternalService, i, err)
		}
	}
	return &quiz, nil
}

// FallbackGenerator детерминированно генерирует викторину-заглушку.
// Используется, когда внешний генератор недоступен или вернул мусор.
// Никогда не возвращает ошибку.
type FallbackGenerator struct{}

// Generate строит numQuestions шаблонных вопросов, правильный ответ всегда первый
func (FallbackGenerator) Generate(_ context.Context, topic, difficulty string, numQuestions int) (*GeneratedQuiz, error) {
	questions := make(entity.QuestionList, numQuestions)
	for i := 0; i < numQuestions; i++ {
		questions[i] = entity.Question{
			Text: fmt.Sprintf("Sample question %d about %s?", i+1, topic),
			Options: []string{
				fmt.Sprintf("Correct answer for %s", topic),
				"Incorrect option A",
				"Incorrect option B",
				"Incorrect option C",
			},
			CorrectAnswer: 0,
			Explanation:   fmt.Sprintf("This explains the correct answer for %s.", topic),
		}
	}
	return &GeneratedQuiz{
		Title:       fmt.Sprintf("AI Quiz: %s", topic),
		Description: fmt.Sprintf("An AI-generated %s level quiz about %s", strings.ToLower(difficulty), topic),
		Questions:   questions,
	}, nil
}
