package practicesession

import (
	"github.com/fsp-trainer/backend/internal/domain/card"
	"github.com/fsp-trainer/backend/internal/domain/folder"
)

// regularPattern is walked cyclically; each visit pops one card from the named
// bucket. Unsure and new cards come up more often than deep streaks.
var regularPattern = []folder.ID{
	folder.IDUnsure,
	folder.IDNew,
	folder.IDOneRight,
	folder.IDUnsure,
	folder.IDStreak2,
	folder.IDUnsure,
	folder.IDStreak3,
	folder.IDNew,
	folder.IDOneRight,
	folder.IDStreak4,
	folder.IDUnsure,
	folder.IDStreak5,
	folder.IDStreak2,
	folder.IDStreak6,
}

// BuildQueue returns the cards to practice for f.
//
// The regular queue interleaves buckets; any other folder yields its members
// in random order (IDAll includes diamonds).
func (s *Session) BuildQueue(cards []card.Card, f Filter) []card.Card {
	var queue []card.Card
	if f.IsRegular() {
		queue = s.BuildRegularQueue(cards, f.Category)
	} else {
		for _, c := range cards {
			if c.MatchesCategory(f.Category) && folder.Contains(f.Folder, s.peek(c.ID)) {
				queue = append(queue, c)
			}
		}
		s.shuffle(queue)
	}

	if f.Limit > 0 && f.Limit < len(queue) {
		queue = queue[:f.Limit]
	}
	return queue
}

// BuildRegularQueue buckets the category's cards by folder, shuffles each
// bucket, caps new cards at today's remaining quota and interleaves the
// buckets with regularPattern. Diamonds are never included.
func (s *Session) BuildRegularQueue(cards []card.Card, category string) []card.Card {
	buckets := make(map[folder.ID][]card.Card)
	for _, c := range cards {
		if !c.MatchesCategory(category) {
			continue
		}
		id := folder.Classify(s.peek(c.ID))
		if id == folder.IDDiamonds {
			continue
		}
		buckets[id] = append(buckets[id], c)
	}

	for id := range buckets {
		s.shuffle(buckets[id])
	}

	if remaining := s.RemainingNewSlotsToday(); len(buckets[folder.IDNew]) > remaining {
		buckets[folder.IDNew] = buckets[folder.IDNew][:remaining]
	}

	return interleave(buckets, regularPattern)
}

// interleave walks pattern repeatedly, taking one card from each non-empty
// bucket it names, until a whole pass takes nothing.
func interleave(buckets map[folder.ID][]card.Card, pattern []folder.ID) []card.Card {
	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	out := make([]card.Card, 0, total)

	for {
		popped := 0
		for _, id := range pattern {
			b := buckets[id]
			if len(b) == 0 {
				continue
			}
			out = append(out, b[0])
			buckets[id] = b[1:]
			popped++
		}
		if popped == 0 {
			return out
		}
	}
}

func (s *Session) shuffle(cards []card.Card) {
	s.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
