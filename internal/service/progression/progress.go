package progression

import (
	"time"

	"github.com/lib/pq"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// NewProgress создает начальную запись прогресса при первом результате пользователя
func NewProgress(userID uint, quizLevel int, isPerfect, earnedNFT bool, now time.Time) *entity.UserProgress {
	progress := &entity.UserProgress{
		UserID:                userID,
		CurrentLevel:          quizLevel,
		TotalQuizzesCompleted: 1,
		StreakCount:           1,
		LastStreakDate:        now,
		LastActiveAt:          now,
		Achievements:          pq.StringArray{},
	}
	if isPerfect {
		progress.TotalPerfectScores = 1
	}
	if earnedNFT {
		progress.TotalNFTsEarned = 1
	}
	return progress
}

// ApplyResult обновляет существующую запись прогресса по завершенной попытке:
// счетчики инкрементируются, уровень растет монотонно, серия пересчитывается
// по календарному правилу. LastStreakDate всегда штампуется текущим временем.
func ApplyResult(p *entity.UserProgress, quizLevel int, isPerfect, earnedNFT bool, now time.Time) {
	p.TotalQuizzesCompleted++
	if isPerfect {
		p.TotalPerfectScores++
	}
	if earnedNFT {
		p.TotalNFTsEarned++
	}
	if quizLevel > p.CurrentLevel {
		p.CurrentLevel = quizLevel
	}

	p.StreakCount = NextStreak(p.StreakCount, p.LastStreakDate, now)
	p.LastStreakDate = now
	p.LastActiveAt = now
}
