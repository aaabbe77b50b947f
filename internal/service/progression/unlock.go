package progression

import (
	"github.com/yourusername/learnflow-api/internal/domain/entity"
)

// IsUnlocked решает, доступна ли викторина аутентифицированному пользователю.
// index - позиция викторины в списке, отсортированном по order_num.
// perfectQuizIDs - множество id викторин, по которым у пользователя есть
// идеальный результат.
//
// Предикат проверяет только непосредственный пререквизит, без транзитивного
// обхода цепочки: при инициализации данные образуют линейную цепочку, и этого
// достаточно. Поведение сохранено намеренно.
func IsUnlocked(index int, quiz *entity.Quiz, perfectQuizIDs map[uint]bool) bool {
	if index == 0 {
		return true
	}
	if quiz.UnlockRequirement == nil {
		return true
	}
	return perfectQuizIDs[*quiz.UnlockRequirement]
}

// IsUnlockedForAnonymous решает доступность для неаутентифицированного
// пользователя: открыта только первая викторина по порядку.
func IsUnlockedForAnonymous(index int) bool {
	return index == 0
}
