package practicesession

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/fsp-trainer/backend/internal/domain/card"
	"github.com/fsp-trainer/backend/internal/domain/folder"
	"github.com/fsp-trainer/backend/internal/domain/progress"
)

// NewCardsPerDay caps how many never-seen cards may be introduced per day.
const NewCardsPerDay = 12

// Storage keys written through Store.
const (
	KeyProgress = "progress"
	KeyDaily    = "daily"
)

// Store is the key-value persistence the session writes through.
// Whether it is local only or mirrors to a remote service is the caller's choice.
type Store interface {
	Load(key string) ([]byte, bool)
	Save(key string, value []byte)
}

// Session owns one learner's progress records and daily aggregates.
// It is not safe for concurrent use; callers serialize access per learner.
type Session struct {
	store Store
	now   func() time.Time
	loc   *time.Location
	rng   *rand.Rand

	progress map[string]*progress.CardProgress
	daily    progress.Daily
}

type Option func(*Session)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLocation sets the timezone that defines "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Session) { s.loc = loc }
}

// WithRand sets the source used for shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// New creates a session and loads any progress the store already holds.
func New(store Store, opts ...Option) *Session {
	s := &Session{
		store: store,
		now:   time.Now,
		loc:   time.UTC,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}

	var progressData, dailyData []byte
	if store != nil {
		progressData, _ = store.Load(KeyProgress)
		dailyData, _ = store.Load(KeyDaily)
	}
	s.progress = progress.DecodeAll(progressData)
	s.daily = progress.DecodeDaily(dailyData)
	return s
}

// Today returns the current calendar day in the session's timezone.
func (s *Session) Today() string {
	return progress.Day(s.now(), s.loc)
}

// Progress returns the record for cardID, creating a zero record on first lookup.
func (s *Session) Progress(cardID string) progress.CardProgress {
	return s.lookup(cardID).Clone()
}

// Classify returns the exclusive folder the card currently belongs to.
func (s *Session) Classify(cardID string) folder.ID {
	return folder.Classify(s.peek(cardID))
}

// RecordAttempt applies one answer to the card, updates today's aggregate and
// persists both.
func (s *Session) RecordAttempt(cardID string, correct bool) progress.CardProgress {
	today := s.Today()

	p := s.lookup(cardID)
	p.Record(correct, today)
	s.daily.Record(today, correct)

	s.persist()
	return p.Clone()
}

// RemainingNewSlotsToday is how many new cards may still be introduced today.
// Records from every category count.
func (s *Session) RemainingNewSlotsToday() int {
	return max(0, NewCardsPerDay-progress.CountIntroducedOn(s.progress, s.Today()))
}

// TodayStats returns the aggregate for the current day.
func (s *Session) TodayStats() progress.DailyStats {
	return s.daily[s.Today()]
}

// FolderCounts counts the cards of a category per folder, IDAll included.
func (s *Session) FolderCounts(cards []card.Card, category string) map[folder.ID]int {
	counts := make(map[folder.ID]int)
	for _, c := range cards {
		if !c.MatchesCategory(category) {
			continue
		}
		counts[folder.IDAll]++
		counts[folder.Classify(s.peek(c.ID))]++
	}
	return counts
}

// lookup returns the stored record, creating it lazily.
func (s *Session) lookup(cardID string) *progress.CardProgress {
	p, ok := s.progress[cardID]
	if !ok || p == nil {
		p = &progress.CardProgress{}
		s.progress[cardID] = p
	}
	return p
}

// peek reads a record without creating it.
func (s *Session) peek(cardID string) progress.CardProgress {
	if p, ok := s.progress[cardID]; ok && p != nil {
		return *p
	}
	return progress.CardProgress{}
}

func (s *Session) persist() {
	if s.store == nil {
		return
	}
	if data, err := json.Marshal(s.progress); err == nil {
		s.store.Save(KeyProgress, data)
	}
	if data, err := json.Marshal(s.daily); err == nil {
		s.store.Save(KeyDaily, data)
	}
}
