package progression

// VoteAction описывает, что нужно сделать с записью голоса
type VoteAction int

const (
	// VoteInsert - голоса не было, создать новый
	VoteInsert VoteAction = iota
	// VoteRemove - повторный голос того же типа, удалить запись (toggle off)
	VoteRemove
	// VoteFlip - голос другого типа, поменять тип на месте
	VoteFlip
)

// Tally хранит денормализованные счетчики голосов викторины
type Tally struct {
	Upvotes   int
	Downvotes int
	VoteScore int
}

// recompute - единственное место, где вычисляется VoteScore.
// Все пути мутации голосов проходят через ApplyVote, поэтому инвариант
// VoteScore == Upvotes - Downvotes не может разъехаться.
func (t Tally) recompute() Tally {
	if t.Upvotes < 0 {
		t.Upvotes = 0
	}
	if t.Downvotes < 0 {
		t.Downvotes = 0
	}
	t.VoteScore = t.Upvotes - t.Downvotes
	return t
}

// ApplyVote вычисляет переход трехвариантного toggle для пары (user, quiz).
// existingType == nil означает, что голоса еще нет.
// Счетчики декрементируются не ниже нуля.
func ApplyVote(existingType *string, requestedType string, tally Tally) (VoteAction, Tally) {
	if existingType == nil {
		if requestedType == "upvote" {
			tally.Upvotes++
		} else {
			tally.Downvotes++
		}
		return VoteInsert, tally.recompute()
	}

	if *existingType == requestedType {
		// Тот же тип - снимаем голос
		if requestedType == "upvote" {
			tally.Upvotes--
		} else {
			tally.Downvotes--
		}
		return VoteRemove, tally.recompute()
	}

	// Другой тип - переключаем
	if requestedType == "upvote" {
		tally.Upvotes++
		tally.Downvotes--
	} else {
		tally.Downvotes++
		tally.Upvotes--
	}
	return VoteFlip, tally.recompute()
}
