package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

func uintPtr(v uint) *uint { return &v }

func TestIsUnlocked_FirstQuizAlwaysOpen(t *testing.T) {
	quiz := &entity.Quiz{ID: 1, UnlockRequirement: uintPtr(99)}
	assert.True(t, IsUnlocked(0, quiz, nil), "первая викторина открыта независимо от пререквизита")
}

func TestIsUnlocked_NoRequirementOpen(t *testing.T) {
	quiz := &entity.Quiz{ID: 5}
	assert.True(t, IsUnlocked(3, quiz, map[uint]bool{}))
}

func TestIsUnlocked_RequiresPerfectOnPrerequisite(t *testing.T) {
	// Arrange: викторина 2 требует идеального результата по викторине 1
	quiz := &entity.Quiz{ID: 2, UnlockRequirement: uintPtr(1)}

	// Act & Assert
	assert.False(t, IsUnlocked(1, quiz, map[uint]bool{}), "без идеального результата по пререквизиту викторина закрыта")
	assert.False(t, IsUnlocked(1, quiz, map[uint]bool{3: true}), "идеальный результат по другой викторине не открывает")
	assert.True(t, IsUnlocked(1, quiz, map[uint]bool{1: true}))
}

func TestIsUnlocked_ChecksOnlyNamedPrerequisite(t *testing.T) {
	// Предикат не транзитивный: достаточно идеального результата по
	// непосредственному пререквизиту, история предков не проверяется
	quiz := &entity.Quiz{ID: 3, UnlockRequirement: uintPtr(2)}
	assert.True(t, IsUnlocked(2, quiz, map[uint]bool{2: true}))
}

func TestIsUnlockedForAnonymous_OnlyFirst(t *testing.T) {
	assert.True(t, IsUnlockedForAnonymous(0))
	assert.False(t, IsUnlockedForAnonymous(1))
	assert.False(t, IsUnlockedForAnonymous(5))
}
