// internal/service/practice.go
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fsp-trainer/backend/internal/domain/card"
	"github.com/fsp-trainer/backend/internal/domain/folder"
	practicesession "github.com/fsp-trainer/backend/internal/domain/practice_session"
	"github.com/fsp-trainer/backend/internal/domain/progress"
	"github.com/fsp-trainer/backend/internal/importer"
	"github.com/fsp-trainer/backend/internal/store"
)

// CardStore is the card persistence the practice service needs.
type CardStore interface {
	ListCards(ctx context.Context, category string) ([]card.Card, error)
	GetCard(ctx context.Context, id string) (card.Card, error)
	UpsertCards(ctx context.Context, cards []card.Card) error
	ListCategories(ctx context.Context) ([]string, error)
}

// AttemptResult is returned after recording an answer.
type AttemptResult struct {
	CardID            string                `json:"card_id"`
	Progress          progress.CardProgress `json:"progress"`
	Folder            folder.ID             `json:"folder"`
	RemainingNewSlots int                   `json:"remaining_new_slots"`
	Today             progress.DailyStats   `json:"today"`
}

// ProgressView is one card's record and current folder.
type ProgressView struct {
	CardID   string                `json:"card_id"`
	Progress progress.CardProgress `json:"progress"`
	Folder   folder.ID             `json:"folder"`
}

// Stats summarizes a learner's state for one category.
type Stats struct {
	Category          string              `json:"category"`
	RemainingNewSlots int                 `json:"remaining_new_slots"`
	Today             progress.DailyStats `json:"today"`
	FolderCounts      map[folder.ID]int   `json:"folder_counts"`
}

// PracticeService keeps one repetition session per learner on top of the
// KV store. Sessions are loaded on first use and serialized per learner.
type PracticeService struct {
	cards  CardStore
	kv     store.KV
	logger *slog.Logger
	opts   []practicesession.Option

	mu       sync.Mutex
	learners map[string]*learnerSession
}

type learnerSession struct {
	mu      sync.Mutex
	session *practicesession.Session
}

// NewPracticeService creates the service. opts are applied to every
// learner's session (timezone, clock).
func NewPracticeService(cards CardStore, kv store.KV, logger *slog.Logger, opts ...practicesession.Option) *PracticeService {
	return &PracticeService{
		cards:    cards,
		kv:       kv,
		logger:   logger,
		opts:     opts,
		learners: make(map[string]*learnerSession),
	}
}

// withSession runs fn while holding the learner's lock.
func (s *PracticeService) withSession(learnerID string, fn func(*practicesession.Session)) {
	s.mu.Lock()
	ls, ok := s.learners[learnerID]
	if !ok {
		ls = &learnerSession{}
		s.learners[learnerID] = ls
	}
	s.mu.Unlock()

	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.session == nil {
		binding := &kvBinding{
			kv:        s.kv,
			namespace: progressNamespace(learnerID),
			logger:    s.logger,
		}
		ls.session = practicesession.New(binding, s.opts...)
	}
	fn(ls.session)
}

func progressNamespace(learnerID string) string {
	return "progress:" + learnerID
}

// Folders lists the static folder catalogue.
func (s *PracticeService) Folders() []folder.Folder {
	return folder.Catalogue()
}

func (s *PracticeService) Cards(ctx context.Context, category string) ([]card.Card, error) {
	return s.cards.ListCards(ctx, category)
}

func (s *PracticeService) Categories(ctx context.Context) ([]string, error) {
	return s.cards.ListCategories(ctx)
}

// ImportCards reads a deck and upserts its valid cards.
func (s *PracticeService) ImportCards(ctx context.Context, r io.Reader, filename string) (*importer.Result, error) {
	res, err := importer.Import(r, filename)
	if err != nil {
		return nil, err
	}
	if len(res.Cards) > 0 {
		if err := s.cards.UpsertCards(ctx, res.Cards); err != nil {
			return nil, err
		}
	}
	s.logger.Info("cards imported",
		"file", filename,
		"imported", res.Created,
		"skipped", res.Skipped,
	)
	return res, nil
}

// Queue builds the learner's practice queue for the filter.
func (s *PracticeService) Queue(ctx context.Context, learnerID string, f practicesession.Filter) ([]card.Card, error) {
	cards, err := s.cards.ListCards(ctx, f.Category)
	if err != nil {
		return nil, err
	}

	var queue []card.Card
	s.withSession(learnerID, func(sess *practicesession.Session) {
		queue = sess.BuildQueue(cards, f)
	})
	if queue == nil {
		queue = []card.Card{}
	}
	return queue, nil
}

// RecordAttempt applies one answer. Unknown cards return store.ErrNotFound.
func (s *PracticeService) RecordAttempt(ctx context.Context, learnerID, cardID string, correct bool) (AttemptResult, error) {
	if _, err := s.cards.GetCard(ctx, cardID); err != nil {
		return AttemptResult{}, err
	}

	res := AttemptResult{CardID: cardID}
	s.withSession(learnerID, func(sess *practicesession.Session) {
		res.Progress = sess.RecordAttempt(cardID, correct)
		res.Folder = sess.Classify(cardID)
		res.RemainingNewSlots = sess.RemainingNewSlotsToday()
		res.Today = sess.TodayStats()
	})
	return res, nil
}

// Progress returns one card's record. Unknown cards return store.ErrNotFound.
func (s *PracticeService) Progress(ctx context.Context, learnerID, cardID string) (ProgressView, error) {
	if _, err := s.cards.GetCard(ctx, cardID); err != nil {
		return ProgressView{}, err
	}

	view := ProgressView{CardID: cardID}
	s.withSession(learnerID, func(sess *practicesession.Session) {
		view.Progress = sess.Progress(cardID)
		view.Folder = sess.Classify(cardID)
	})
	return view, nil
}

// Stats returns remaining new slots, today's aggregate and folder counts.
func (s *PracticeService) Stats(ctx context.Context, learnerID, category string) (Stats, error) {
	cards, err := s.cards.ListCards(ctx, category)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Category: category}
	s.withSession(learnerID, func(sess *practicesession.Session) {
		stats.RemainingNewSlots = sess.RemainingNewSlotsToday()
		stats.Today = sess.TodayStats()
		stats.FolderCounts = sess.FolderCounts(cards, category)
	})
	return stats, nil
}

// ============================================================================
// KV binding
// ============================================================================

const kvTimeout = 5 * time.Second

// kvBinding adapts a namespaced, context-aware KV to the session's
// synchronous Store. Failures are logged; the session keeps its in-memory
// state either way.
type kvBinding struct {
	kv        store.KV
	namespace string
	logger    *slog.Logger
}

func (b *kvBinding) Load(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), kvTimeout)
	defer cancel()

	value, err := b.kv.Get(ctx, b.namespace, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		b.logger.Error("failed to load progress", "namespace", b.namespace, "key", key, "error", err)
		return nil, false
	}
	return value, true
}

func (b *kvBinding) Save(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), kvTimeout)
	defer cancel()

	if err := b.kv.Put(ctx, b.namespace, key, value); err != nil {
		b.logger.Error("failed to save progress", "namespace", b.namespace, "key", key, "error", err)
	}
}
