package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak_YesterdayIncrements(t *testing.T) {
	// Arrange
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)
	yesterday := time.Date(2025, 6, 14, 23, 59, 0, 0, time.Local)

	// Act & Assert: активность вчера → серия растет ровно на 1
	assert.Equal(t, 4, NextStreak(3, yesterday, now), "серия должна увеличиться на 1 при активности вчера")
}

func TestNextStreak_SameDayUnchanged(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.Local)
	earlierToday := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)

	assert.Equal(t, 3, NextStreak(3, earlierToday, now), "серия не меняется при повторной активности в тот же день")
}

func TestNextStreak_GapResets(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)
	twoDaysAgo := time.Date(2025, 6, 13, 10, 0, 0, 0, time.Local)
	weekAgo := time.Date(2025, 6, 8, 10, 0, 0, 0, time.Local)

	assert.Equal(t, 1, NextStreak(5, twoDaysAgo, now), "разрыв в 2 дня сбрасывает серию")
	assert.Equal(t, 1, NextStreak(5, weekAgo, now), "длинный разрыв сбрасывает серию")
}

func TestNextStreak_ZeroCurrentStartsAtOne(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)
	assert.Equal(t, 1, NextStreak(0, time.Time{}, now))
}

func TestNextStreak_MonthBoundary(t *testing.T) {
	// 1 июля после активности 30 июня - календарное «вчера»
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.Local)
	lastDayOfJune := time.Date(2025, 6, 30, 22, 0, 0, 0, time.Local)

	assert.Equal(t, 8, NextStreak(7, lastDayOfJune, now))
}
