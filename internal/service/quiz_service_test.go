package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	"github.com/yourusername/learnflow-api/internal/domain/repository"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
)

func testQuizChain() []entity.Quiz {
	return []entity.Quiz{
		{ID: 1, Title: "Technology Fundamentals", Difficulty: entity.DifficultyBeginner, Level: 1, OrderNum: 1, IsActive: true},
		{ID: 2, Title: "Science Basics", Difficulty: entity.DifficultyBeginner, Level: 1, OrderNum: 2, IsActive: true, UnlockRequirement: uintPtr(1)},
		{ID: 3, Title: "Programming Concepts", Difficulty: entity.DifficultyIntermediate, Level: 2, OrderNum: 3, IsActive: true, UnlockRequirement: uintPtr(2)},
	}
}

func TestQuizService_ListQuizzes_Anonymous(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("ListActive", repository.QuizSortOrder).Return(testQuizChain(), nil)

	quizService := NewQuizService(mockQuizRepo, new(MockResultRepository), new(MockVoteRepository), new(MockBadgeRepository))

	// Act
	statuses, err := quizService.ListQuizzes(nil, repository.QuizSortOrder, "")

	// Assert
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.True(t, statuses[0].IsUnlocked, "Анониму открыта только первая викторина")
	assert.False(t, statuses[1].IsUnlocked)
	assert.False(t, statuses[2].IsUnlocked)
	assert.Nil(t, statuses[0].BestScore)
	mockQuizRepo.AssertExpectations(t)
}

func TestQuizService_ListQuizzes_AnonymousVotesSort(t *testing.T) {
	// Arrange: при сортировке по голосам первая по order_num викторина
	// остается единственной открытой, даже если она не первая в списке
	quizzes := testQuizChain()
	reordered := []entity.Quiz{quizzes[2], quizzes[0], quizzes[1]}

	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("ListActive", repository.QuizSortVotes).Return(reordered, nil)

	quizService := NewQuizService(mockQuizRepo, new(MockResultRepository), new(MockVoteRepository), new(MockBadgeRepository))

	// Act
	statuses, err := quizService.ListQuizzes(nil, repository.QuizSortVotes, "")

	// Assert
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.False(t, statuses[0].IsUnlocked, "Викторина с order_num=3 закрыта")
	assert.True(t, statuses[1].IsUnlocked, "Открыта викторина с минимальным order_num")
	assert.False(t, statuses[2].IsUnlocked)
}

func TestQuizService_ListQuizzes_UnlockByPerfectScore(t *testing.T) {
	// Arrange: идеальный результат по викторине 1 открывает викторину 2,
	// но не викторину 3 (пререквизит проверяется без транзитивности)
	mockQuizRepo := new(MockQuizRepository)
	mockResultRepo := new(MockResultRepository)
	mockVoteRepo := new(MockVoteRepository)
	mockBadgeRepo := new(MockBadgeRepository)

	mockQuizRepo.On("ListActive", repository.QuizSortOrder).Return(testQuizChain(), nil)
	mockResultRepo.On("GetByUser", uint(42)).Return([]entity.QuizResult{
		{UserID: 42, QuizID: 1, Score: 3, TotalQuestions: 3, IsPerfectScore: true},
		{UserID: 42, QuizID: 2, Score: 2, TotalQuestions: 3, IsPerfectScore: false},
	}, nil)
	mockBadgeRepo.On("QuizIDsByUser", uint(42)).Return([]uint{1}, nil)
	mockVoteRepo.On("GetByUser", uint(42)).Return([]entity.QuizVote{
		{UserID: 42, QuizID: 1, VoteType: entity.VoteTypeUpvote},
	}, nil)

	quizService := NewQuizService(mockQuizRepo, mockResultRepo, mockVoteRepo, mockBadgeRepo)

	// Act
	statuses, err := quizService.ListQuizzes(uintPtr(42), repository.QuizSortOrder, "")

	// Assert
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	assert.True(t, statuses[0].IsUnlocked)
	assert.True(t, statuses[0].IsCompleted, "Идеальный результат отмечает викторину завершенной")
	assert.True(t, statuses[0].HasNFT)
	require.NotNil(t, statuses[0].UserVote)
	assert.Equal(t, entity.VoteTypeUpvote, *statuses[0].UserVote)
	require.NotNil(t, statuses[0].BestScore)
	assert.Equal(t, 3, *statuses[0].BestScore)

	assert.True(t, statuses[1].IsUnlocked, "Идеальный результат по пререквизиту открывает викторину")
	assert.False(t, statuses[1].IsCompleted, "Неидеальный результат не считается завершением")
	require.NotNil(t, statuses[1].BestScore)
	assert.Equal(t, 2, *statuses[1].BestScore)

	assert.False(t, statuses[2].IsUnlocked, "Викторина 3 закрыта: по викторине 2 нет идеального результата")
	assert.Nil(t, statuses[2].BestScore)

	mockQuizRepo.AssertExpectations(t)
	mockResultRepo.AssertExpectations(t)
}

func TestQuizService_ListQuizzes_SearchFilter(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("ListActive", repository.QuizSortOrder).Return(testQuizChain(), nil)

	quizService := NewQuizService(mockQuizRepo, new(MockResultRepository), new(MockVoteRepository), new(MockBadgeRepository))

	// Act
	statuses, err := quizService.ListQuizzes(nil, repository.QuizSortOrder, "  SCIENCE ")

	// Assert
	require.NoError(t, err)
	require.Len(t, statuses, 1, "Поиск нечувствителен к регистру и пробелам")
	assert.Equal(t, "Science Basics", statuses[0].Title)
}

func TestQuizService_GetQuiz_AnonymousDeniedNonFirst(t *testing.T) {
	// Arrange
	quizzes := testQuizChain()
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetByID", uint(2)).Return(&quizzes[1], nil)
	mockQuizRepo.On("GetFirstByOrder").Return(&quizzes[0], nil)

	quizService := NewQuizService(mockQuizRepo, new(MockResultRepository), new(MockVoteRepository), new(MockBadgeRepository))

	// Act
	quiz, err := quizService.GetQuiz(2, nil)

	// Assert
	assert.Nil(t, quiz)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden), "Анониму доступна только первая викторина")
}

func TestQuizService_GetQuiz_LockedWithoutPerfectScore(t *testing.T) {
	// Arrange
	quizzes := testQuizChain()
	mockQuizRepo := new(MockQuizRepository)
	mockResultRepo := new(MockResultRepository)
	mockQuizRepo.On("GetByID", uint(3)).Return(&quizzes[2], nil)
	mockResultRepo.On("HasPerfectScore", uint(7), uint(2)).Return(false, nil)

	quizService := NewQuizService(mockQuizRepo, mockResultRepo, new(MockVoteRepository), new(MockBadgeRepository))

	// Act
	quiz, err := quizService.GetQuiz(3, uintPtr(7))

	// Assert
	assert.Nil(t, quiz)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	mockResultRepo.AssertExpectations(t)
}

func TestQuizService_InitializeQuizzes_CreatesChain(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("Count").Return(int64(0), nil)

	nextID := uint(0)
	mockQuizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(nil).Run(func(args mock.Arguments) {
		nextID++
		args.Get(0).(*entity.Quiz).ID = nextID
	})
	// Цепочка: каждая викторина ссылается на предыдущую
	for i := uint(2); i <= 6; i++ {
		mockQuizRepo.On("SetUnlockRequirement", i, i-1).Return(nil)
	}

	quizService := NewQuizService(mockQuizRepo, new(MockResultRepository), new(MockVoteRepository), new(MockBadgeRepository))

	// Act
	created, err := quizService.InitializeQuizzes()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 6, created, "Должно быть создано 6 стартовых викторин")
	mockQuizRepo.AssertExpectations(t)
}

func TestQuizService_InitializeQuizzes_Idempotent(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("Count").Return(int64(6), nil)

	quizService := NewQuizService(mockQuizRepo, new(MockResultRepository), new(MockVoteRepository), new(MockBadgeRepository))

	// Act
	created, err := quizService.InitializeQuizzes()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, created, "Повторная инициализация должна быть no-op")
	mockQuizRepo.AssertNotCalled(t, "Create")
}

func TestQuizService_GetUserVote_NoVote(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1}, nil)

	mockVoteRepo := new(MockVoteRepository)
	mockVoteRepo.On("GetByUserAndQuiz", uint(7), uint(1)).Return(nil, apperrors.ErrNotFound)

	quizService := NewQuizService(mockQuizRepo, new(MockResultRepository), mockVoteRepo, new(MockBadgeRepository))

	// Act
	voteType, err := quizService.GetUserVote(7, 1)

	// Assert
	require.NoError(t, err, "Отсутствие голоса не является ошибкой")
	assert.Nil(t, voteType)
}

func TestQuizService_GetUserVote_Existing(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1}, nil)

	mockVoteRepo := new(MockVoteRepository)
	mockVoteRepo.On("GetByUserAndQuiz", uint(7), uint(1)).Return(&entity.QuizVote{
		UserID:   7,
		QuizID:   1,
		VoteType: entity.VoteTypeUpvote,
	}, nil)

	quizService := NewQuizService(mockQuizRepo, new(MockResultRepository), mockVoteRepo, new(MockBadgeRepository))

	// Act
	voteType, err := quizService.GetUserVote(7, 1)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, voteType)
	assert.Equal(t, entity.VoteTypeUpvote, *voteType)
}

func TestQuizService_GetVoteStats(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetByID", uint(3)).Return(&entity.Quiz{
		ID:        3,
		Upvotes:   5,
		Downvotes: 2,
		VoteScore: 3,
	}, nil)

	quizService := NewQuizService(mockQuizRepo, new(MockResultRepository), new(MockVoteRepository), new(MockBadgeRepository))

	// Act
	stats, err := quizService.GetVoteStats(3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(3), stats.QuizID)
	assert.Equal(t, 5, stats.Upvotes)
	assert.Equal(t, 2, stats.Downvotes)
	assert.Equal(t, 3, stats.VoteScore, "vote_score должен равняться upvotes - downvotes")
}
