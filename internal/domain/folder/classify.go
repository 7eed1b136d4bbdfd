package folder

import "github.com/fsp-trainer/backend/internal/domain/progress"

type rule struct {
	id    ID
	match func(progress.CardProgress) bool
}

// rules is evaluated top to bottom; the first match wins. Every folder except
// IDAll is mutually exclusive because of this ordering.
var rules = []rule{
	{IDDiamonds, progress.CardProgress.IsDiamond},
	{IDNew, func(p progress.CardProgress) bool { return !p.Introduced }},
	{IDUnsure, progress.CardProgress.LastWrong},
	{IDOneRight, rightWithStreak(1)},
	{IDStreak2, rightWithStreak(2)},
	{IDStreak3, rightWithStreak(3)},
	{IDStreak4, rightWithStreak(4)},
	{IDStreak5, rightWithStreak(5)},
	{IDStreak6, rightWithStreak(6)},
}

func rightWithStreak(n int) func(progress.CardProgress) bool {
	return func(p progress.CardProgress) bool {
		return p.LastRight() && p.Streak == n
	}
}

// Classify returns the single exclusive folder for p. Introduced cards that
// match no rule (inconsistent bookkeeping) land in IDUnsure.
func Classify(p progress.CardProgress) ID {
	for _, r := range rules {
		if r.match(p) {
			return r.id
		}
	}
	return IDUnsure
}

// Contains reports whether p belongs to folder id.
func Contains(id ID, p progress.CardProgress) bool {
	if id == IDAll {
		return true
	}
	return Classify(p) == id
}
