package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
)

func TestAIQuizService_GenerateQuiz_Success(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockGenerator := new(MockQuizGenerator)

	generated := &GeneratedQuiz{
		Title:       "Docker Basics",
		Description: "Containers and images",
		Questions: entity.QuestionList{
			{Text: "What is a container?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 2, Explanation: "..."},
			{Text: "What is an image?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 0, Explanation: "..."},
		},
	}
	mockGenerator.On("Generate", mock.Anything, "Docker", entity.DifficultyBeginner, 2).Return(generated, nil)
	mockQuizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Quiz).ID = 10
	})

	svc := NewAIQuizService(mockQuizRepo, nil, mockGenerator, nil, 0)

	// Act
	quiz, err := svc.GenerateQuiz(context.Background(), 42, GenerateQuizInput{
		Topic:        "Docker",
		Difficulty:   entity.DifficultyBeginner,
		NumQuestions: 2,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, "Docker Basics", quiz.Title)
	assert.True(t, quiz.IsAIGenerated)
	assert.Equal(t, entity.AIQuizOrder, quiz.OrderNum, "AI-викторины попадают в конец списка")
	assert.Nil(t, quiz.UnlockRequirement, "AI-викторины не участвуют в цепочке разблокировки")
	assert.Equal(t, 1, quiz.Level)
	require.NotNil(t, quiz.CreatedBy)
	assert.Equal(t, uint(42), *quiz.CreatedBy)
	assert.NotNil(t, quiz.GeneratedAt)
	mockGenerator.AssertExpectations(t)
	mockQuizRepo.AssertExpectations(t)
}

func TestAIQuizService_GenerateQuiz_FallbackOnGeneratorError(t *testing.T) {
	// Arrange: внешний генератор падает, запрос обслуживает fallback
	mockQuizRepo := new(MockQuizRepository)
	mockGenerator := new(MockQuizGenerator)

	mockGenerator.On("Generate", mock.Anything, "Kubernetes", entity.DifficultyAdvanced, 3).
		Return(nil, errors.New("api unreachable"))
	mockQuizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(nil)

	svc := NewAIQuizService(mockQuizRepo, nil, mockGenerator, nil, 0)

	// Act
	quiz, err := svc.GenerateQuiz(context.Background(), 1, GenerateQuizInput{
		Topic:        "Kubernetes",
		Difficulty:   entity.DifficultyAdvanced,
		NumQuestions: 3,
	})

	// Assert
	require.NoError(t, err, "Сбой генератора не должен ронять запрос")
	require.NotNil(t, quiz)
	assert.Equal(t, "AI Quiz: Kubernetes", quiz.Title)
	assert.Equal(t, "AI Generated", quiz.Category)
	assert.Equal(t, 3, quiz.Level)
	require.Len(t, quiz.Questions, 3, "Fallback создает ровно запрошенное число вопросов")
	for i, q := range quiz.Questions {
		assert.Len(t, q.Options, 4, "Вопрос %d должен иметь 4 варианта", i)
		assert.Equal(t, 0, q.CorrectAnswer, "У fallback-вопросов правильный ответ всегда первый")
	}
}

func TestAIQuizService_GenerateQuiz_ValidationErrors(t *testing.T) {
	svc := NewAIQuizService(new(MockQuizRepository), nil, new(MockQuizGenerator), nil, 0)

	cases := []struct {
		name  string
		input GenerateQuizInput
	}{
		{"пустая тема", GenerateQuizInput{Topic: "  ", Difficulty: entity.DifficultyBeginner, NumQuestions: 3}},
		{"неизвестная сложность", GenerateQuizInput{Topic: "Go", Difficulty: "Hard", NumQuestions: 3}},
		{"ноль вопросов", GenerateQuizInput{Topic: "Go", Difficulty: entity.DifficultyBeginner, NumQuestions: 0}},
		{"слишком много вопросов", GenerateQuizInput{Topic: "Go", Difficulty: entity.DifficultyBeginner, NumQuestions: 21}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quiz, err := svc.GenerateQuiz(context.Background(), 1, tc.input)
			assert.Nil(t, quiz)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
		})
	}
}

func TestAIQuizService_GenerateQuiz_RateLimitExceeded(t *testing.T) {
	// Arrange
	mockCacheRepo := new(MockCacheRepository)
	mockCacheRepo.On("IncrementWithTTL", "ai:generate:5", time.Hour).Return(int64(11), nil)

	svc := NewAIQuizService(new(MockQuizRepository), mockCacheRepo, new(MockQuizGenerator), nil, 10)

	// Act
	quiz, err := svc.GenerateQuiz(context.Background(), 5, GenerateQuizInput{
		Topic:        "Go",
		Difficulty:   entity.DifficultyBeginner,
		NumQuestions: 3,
	})

	// Assert
	assert.Nil(t, quiz)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden), "Превышение лимита генераций отклоняется")
	mockCacheRepo.AssertExpectations(t)
}

func TestAIQuizService_GenerateQuiz_RateLimitDegradesOnCacheError(t *testing.T) {
	// Arrange: ошибка Redis не блокирует генерацию
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)
	mockGenerator := new(MockQuizGenerator)

	mockCacheRepo.On("IncrementWithTTL", "ai:generate:5", time.Hour).Return(int64(0), errors.New("redis down"))
	mockGenerator.On("Generate", mock.Anything, "Go", entity.DifficultyBeginner, 2).
		Return(nil, errors.New("also down"))
	mockQuizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(nil)

	svc := NewAIQuizService(mockQuizRepo, mockCacheRepo, mockGenerator, nil, 10)

	// Act
	quiz, err := svc.GenerateQuiz(context.Background(), 5, GenerateQuizInput{
		Topic:        "Go",
		Difficulty:   entity.DifficultyBeginner,
		NumQuestions: 2,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, quiz)
}

func TestParseGeneratedQuiz_ExtractsJSONFromMarkdown(t *testing.T) {
	// Arrange: модель обернула JSON в markdown-блок
	text := "```json\n{\"title\":\"T\",\"description\":\"D\",\"questions\":[{\"question\":\"Q?\",\"options\":[\"A\",\"B\",\"C\",\"D\"],\"correct_answer\":1,\"explanation\":\"E\"}]}\n```"

	// Act
	quiz, err := parseGeneratedQuiz(text)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "T", quiz.Title)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, 1, quiz.Questions[0].CorrectAnswer)
}

func TestParseGeneratedQuiz_RejectsInvalidQuestions(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"нет JSON", "sorry, I cannot help with that"},
		{"три варианта", `{"title":"T","questions":[{"question":"Q?","options":["A","B","C"],"correct_answer":0}]}`},
		{"индекс вне диапазона", `{"title":"T","questions":[{"question":"Q?","options":["A","B","C","D"],"correct_answer":4}]}`},
		{"нет вопросов", `{"title":"T","questions":[]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quiz, err := parseGeneratedQuiz(tc.text)
			assert.Nil(t, quiz)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrExternalService))
		})
	}
}
