package progression

import (
	"time"
)

// calendarDate возвращает календарную дату в локальной таймзоне.
// Серия считается по локальным дням, без нормализации к UTC.
func calendarDate(t time.Time) (int, time.Month, int) {
	return t.Date()
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := calendarDate(a)
	by, bm, bd := calendarDate(b)
	return ay == by && am == bm && ad == bd
}

// NextStreak применяет правило серии к текущему счетчику:
//   - последняя активность вчера  → серия +1
//   - последняя активность сегодня → серия без изменений
//   - иначе (разрыв >= 2 дней)     → серия сбрасывается в 1
func NextStreak(current int, lastStreakDate time.Time, now time.Time) int {
	if current <= 0 {
		return 1
	}

	yesterday := now.AddDate(0, 0, -1)
	switch {
	case sameCalendarDay(lastStreakDate, yesterday):
		return current + 1
	case sameCalendarDay(lastStreakDate, now):
		return current
	default:
		return 1
	}
}
