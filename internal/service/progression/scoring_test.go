package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

func TestTotalScore_WeightedSum(t *testing.T) {
	// Arrange: 2 идеальных, 5 пройдено, 1 NFT, серия 3, уровень 2
	progress := &entity.UserProgress{
		UserID:                1,
		TotalPerfectScores:    2,
		TotalQuizzesCompleted: 5,
		TotalNFTsEarned:       1,
		StreakCount:           3,
		CurrentLevel:          2,
	}

	// Act & Assert: 2*100 + 5*10 + 1*50 + 3*5 + 2*25 = 365
	assert.Equal(t, 365, TotalScore(progress), "итоговый счет должен быть взвешенной суммой")
}

func TestTotalScore_ZeroProgress(t *testing.T) {
	progress := &entity.UserProgress{UserID: 7}
	assert.Equal(t, 0, TotalScore(progress))
}

func TestStandings_SortedDescendingWithRanks(t *testing.T) {
	// Arrange
	rows := []entity.UserProgress{
		{UserID: 1, TotalQuizzesCompleted: 1},                  // 10
		{UserID: 2, TotalPerfectScores: 1},                     // 100
		{UserID: 3, TotalNFTsEarned: 1},                        // 50
		{UserID: 4, TotalQuizzesCompleted: 1, CurrentLevel: 1}, // 35
	}

	// Act
	standings := Standings(rows)

	// Assert
	require.Len(t, standings, 4)
	assert.Equal(t, uint(2), standings[0].UserID)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, uint(3), standings[1].UserID)
	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, uint(4), standings[2].UserID)
	assert.Equal(t, uint(1), standings[3].UserID)
	assert.Equal(t, 4, standings[3].Rank)
}

func TestStandings_TiesKeepInsertionOrder(t *testing.T) {
	// Arrange: три пользователя с одинаковым счетом
	rows := []entity.UserProgress{
		{UserID: 10, TotalQuizzesCompleted: 1},
		{UserID: 11, TotalQuizzesCompleted: 1},
		{UserID: 12, TotalQuizzesCompleted: 1},
	}

	// Act
	standings := Standings(rows)

	// Assert: стабильная сортировка сохраняет исходный порядок при равенстве
	assert.Equal(t, uint(10), standings[0].UserID)
	assert.Equal(t, uint(11), standings[1].UserID)
	assert.Equal(t, uint(12), standings[2].UserID)
}

func TestRankOf_AgreesWithStandings(t *testing.T) {
	// Arrange: фиксированный снапшот - RankOf обязан совпадать с позицией
	// пользователя в полном ранжировании
	rows := []entity.UserProgress{
		{UserID: 1, TotalPerfectScores: 3},
		{UserID: 2, TotalPerfectScores: 1},
		{UserID: 3, TotalPerfectScores: 2},
		{UserID: 4},
	}
	standings := Standings(rows)

	for i, s := range standings {
		got, ok := RankOf(standings, s.UserID)
		require.True(t, ok)
		assert.Equal(t, i+1, got.Rank, "ранг пользователя должен совпадать с его позицией в лидерборде")
		assert.Equal(t, s.TotalScore, got.TotalScore)
	}
}

func TestRankOf_UnknownUser(t *testing.T) {
	standings := Standings([]entity.UserProgress{{UserID: 1}})
	_, ok := RankOf(standings, 99)
	assert.False(t, ok, "пользователь без записи прогресса не участвует в ранжировании")
}
