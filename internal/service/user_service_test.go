package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
)

func TestUserService_UpdateDisplayName_TrimsWhitespace(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	mockUserRepo.On("UpdateDisplayName", uint(1), "Alice").Return(nil)

	svc := NewUserService(mockUserRepo, new(MockProgressRepository), new(MockResultRepository), new(MockBadgeRepository))

	// Act
	name, err := svc.UpdateDisplayName(1, "  Alice  ")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Alice", name, "Имя сохраняется без окружающих пробелов")
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_UpdateDisplayName_Rejected(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)

	svc := NewUserService(mockUserRepo, new(MockProgressRepository), new(MockResultRepository), new(MockBadgeRepository))

	cases := []struct {
		name  string
		input string
	}{
		{"пустое имя", ""},
		{"только пробелы", "   "},
		{"длиннее 50 символов", strings.Repeat("a", 51)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateDisplayName(1, tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
		})
	}
	mockUserRepo.AssertNotCalled(t, "UpdateDisplayName")
}

func TestUserService_UpdateDisplayName_ExactlyMaxLength(t *testing.T) {
	// Arrange: ровно 50 символов - допустимая граница
	name := strings.Repeat("b", entity.MaxDisplayNameLength)
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	mockUserRepo.On("UpdateDisplayName", uint(1), name).Return(nil)

	svc := NewUserService(mockUserRepo, new(MockProgressRepository), new(MockResultRepository), new(MockBadgeRepository))

	// Act
	got, err := svc.UpdateDisplayName(1, name)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, name, got)
}

func TestUserService_GetProfile_NewUser(t *testing.T) {
	// Arrange: у нового пользователя нет прогресса - это не ошибка
	mockProgressRepo := new(MockProgressRepository)
	mockResultRepo := new(MockResultRepository)
	mockBadgeRepo := new(MockBadgeRepository)

	mockProgressRepo.On("GetByUserID", uint(7)).Return(nil, apperrors.ErrNotFound)
	mockResultRepo.On("GetByUser", uint(7)).Return([]entity.QuizResult{}, nil)
	mockResultRepo.On("GetRecentByUser", uint(7), 5).Return([]entity.QuizResult{}, nil)
	mockBadgeRepo.On("GetByUser", uint(7)).Return([]entity.NFTBadge{}, nil)

	svc := NewUserService(new(MockUserRepository), mockProgressRepo, mockResultRepo, mockBadgeRepo)

	// Act
	profile, err := svc.GetProfile(7)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, profile.Progress)
	assert.Equal(t, int64(0), profile.TotalQuizzesTaken)
	assert.Equal(t, 0.0, profile.AverageScore)
}

func TestUserService_GetProfile_AverageScore(t *testing.T) {
	// Arrange
	mockProgressRepo := new(MockProgressRepository)
	mockResultRepo := new(MockResultRepository)
	mockBadgeRepo := new(MockBadgeRepository)

	results := []entity.QuizResult{
		{QuizID: 1, Score: 3, TotalQuestions: 3}, // 1.0
		{QuizID: 2, Score: 1, TotalQuestions: 4}, // 0.25
	}
	progress := &entity.UserProgress{UserID: 7, CurrentLevel: 1, TotalQuizzesCompleted: 2}

	mockProgressRepo.On("GetByUserID", uint(7)).Return(progress, nil)
	mockResultRepo.On("GetByUser", uint(7)).Return(results, nil)
	mockResultRepo.On("GetRecentByUser", uint(7), 5).Return(results, nil)
	mockBadgeRepo.On("GetByUser", uint(7)).Return([]entity.NFTBadge{}, nil)

	svc := NewUserService(new(MockUserRepository), mockProgressRepo, mockResultRepo, mockBadgeRepo)

	// Act
	profile, err := svc.GetProfile(7)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, profile.Progress)
	assert.Equal(t, int64(2), profile.TotalQuizzesTaken)
	assert.InDelta(t, 0.625, profile.AverageScore, 0.0001, "Средняя доля правильных ответов: (1.0+0.25)/2")
}

func TestBuildInsights_Deterministic(t *testing.T) {
	// Arrange
	progress := &entity.UserProgress{
		UserID:                1,
		CurrentLevel:          2,
		TotalQuizzesCompleted: 6,
		TotalPerfectScores:    2,
	}
	results := []entity.QuizResult{
		{Score: 1, TotalQuestions: 3},
		{Score: 1, TotalQuestions: 3},
		{Score: 2, TotalQuestions: 3},
		{Score: 3, TotalQuestions: 3},
		{Score: 3, TotalQuestions: 3},
		{Score: 3, TotalQuestions: 3},
	}

	// Act
	insights := BuildInsights(progress, results)

	// Assert
	assert.Equal(t, "Improving", insights.LearningTrend, "Последние три попытки заметно лучше предыдущих")
	assert.Contains(t, insights.Strengths, "Achieving perfect scores")
	assert.Equal(t, "Consistent learner", insights.LearningStyle)
	assert.GreaterOrEqual(t, insights.ProgressRating, 1)
	assert.LessOrEqual(t, insights.ProgressRating, 10)
}

func TestBuildInsights_NoProgress(t *testing.T) {
	// Act
	insights := BuildInsights(nil, nil)

	// Assert
	assert.Equal(t, "Not enough data", insights.LearningTrend)
	assert.Equal(t, "Getting started", insights.LearningStyle)
	assert.Equal(t, 2, insights.ProgressRating, "Уровень 1 без результатов дает рейтинг 1*2+0")
}
