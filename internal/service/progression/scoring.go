package progression

import (
	"sort"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// Весовые коэффициенты итогового счета пользователя
const (
	PointsPerPerfectScore  = 100
	PointsPerQuizCompleted = 10
	PointsPerNFT           = 50
	PointsPerStreakDay     = 5
	PointsPerLevel         = 25
)

// TotalScore вычисляет взвешенный итоговый счет по записи прогресса
func TotalScore(p *entity.UserProgress) int {
	return p.TotalPerfectScores*PointsPerPerfectScore +
		p.TotalQuizzesCompleted*PointsPerQuizCompleted +
		p.TotalNFTsEarned*PointsPerNFT +
		p.StreakCount*PointsPerStreakDay +
		p.CurrentLevel*PointsPerLevel
}

// Standing представляет позицию пользователя в глобальном ранжировании
type Standing struct {
	UserID     uint
	TotalScore int
	Rank       int
}

// Standings строит глобальное ранжирование по снапшоту записей прогресса.
// Сортировка по счету по убыванию, стабильная: при равном счете сохраняется
// исходный порядок. Ранг - позиция с 1. Ничего не кешируется: функция
// вызывается заново при каждом запросе лидерборда или ранга.
func Standings(progress []entity.UserProgress) []Standing {
	standings := make([]Standing, len(progress))
	for i := range progress {
		standings[i] = Standing{
			UserID:     progress[i].UserID,
			TotalScore: TotalScore(&progress[i]),
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalScore > standings[j].TotalScore
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// RankOf возвращает позицию пользователя в готовом ранжировании.
// false - если пользователя в снапшоте нет.
func RankOf(standings []Standing, userID uint) (Standing, bool) {
	for _, s := range standings {
		if s.UserID == userID {
			return s, true
		}
	}
	return Standing{}, false
}
