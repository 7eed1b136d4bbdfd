// internal/store/sql.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/fsp-trainer/backend/internal/domain/card"
	"github.com/fsp-trainer/backend/internal/domain/evaluation"
)

// Supported values of DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// The schema sticks to types and upsert syntax both SQLite and Postgres
// accept; timestamps are unix milliseconds.
const schema = `
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    options TEXT NOT NULL DEFAULT '[]',
    explanation TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_cards_category ON cards (category);

CREATE TABLE IF NOT EXISTS kv (
    namespace TEXT NOT NULL,
    item_key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at BIGINT NOT NULL,
    PRIMARY KEY (namespace, item_key)
);

CREATE TABLE IF NOT EXISTS evaluations (
    id TEXT PRIMARY KEY,
    learner_id TEXT NOT NULL,
    type TEXT NOT NULL,
    total_score DOUBLE PRECISION NOT NULL,
    passed BOOLEAN NOT NULL,
    transcript TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluations_learner ON evaluations (learner_id, created_at);

CREATE TABLE IF NOT EXISTS prompts (
    learner_id TEXT NOT NULL,
    type TEXT NOT NULL,
    prompt TEXT NOT NULL,
    updated_at BIGINT NOT NULL,
    PRIMARY KEY (learner_id, type)
);
`

// SQLStore keeps cards, key-value progress, evaluation history and custom
// prompts in SQLite (local) or Postgres (hosted).
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// Compile-time check: *SQLStore is a KV.
var _ KV = (*SQLStore)(nil)

// Open connects with the given driver and creates the schema.
func Open(driver, dsn string) (*SQLStore, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// One connection keeps ":memory:" databases shared and avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	s, err := NewSQLStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an open connection and creates the schema.
func NewSQLStore(db *sqlx.DB) (*SQLStore, error) {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return &SQLStore{db: db, now: time.Now}, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ============================================================================
// Key-value
// ============================================================================

func (s *SQLStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		s.db.Rebind("SELECT value FROM kv WHERE namespace = ? AND item_key = ?"), namespace, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *SQLStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO kv (namespace, item_key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, item_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), namespace, key, string(value), s.now().UnixMilli())
	return err
}

// ============================================================================
// Cards
// ============================================================================

type cardRow struct {
	ID          string `db:"id"`
	Category    string `db:"category"`
	Question    string `db:"question"`
	Answer      string `db:"answer"`
	Options     string `db:"options"`
	Explanation string `db:"explanation"`
}

func (r cardRow) toCard() card.Card {
	c := card.Card{
		ID:          r.ID,
		Category:    r.Category,
		Question:    r.Question,
		Answer:      r.Answer,
		Explanation: r.Explanation,
	}
	_ = json.Unmarshal([]byte(r.Options), &c.Options)
	return c
}

// UpsertCards inserts or replaces cards by ID in one transaction.
func (s *SQLStore) UpsertCards(ctx context.Context, cards []card.Card) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := tx.Rebind(`
		INSERT INTO cards (id, category, question, answer, options, explanation) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			category = excluded.category,
			question = excluded.question,
			answer = excluded.answer,
			options = excluded.options,
			explanation = excluded.explanation
	`)
	for _, c := range cards {
		options := c.Options
		if options == nil {
			options = []string{}
		}
		optionsJSON, err := json.Marshal(options)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, c.ID, c.Category, c.Question, c.Answer, string(optionsJSON), c.Explanation); err != nil {
			return fmt.Errorf("failed to upsert card %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// ListCards returns the cards of a category ("" or "all" for every card).
func (s *SQLStore) ListCards(ctx context.Context, category string) ([]card.Card, error) {
	var rows []cardRow
	var err error
	if category == "" || category == card.AllCategories {
		err = s.db.SelectContext(ctx, &rows, "SELECT id, category, question, answer, options, explanation FROM cards ORDER BY category, id")
	} else {
		err = s.db.SelectContext(ctx, &rows,
			s.db.Rebind("SELECT id, category, question, answer, options, explanation FROM cards WHERE category = ? ORDER BY id"), category)
	}
	if err != nil {
		return nil, err
	}

	cards := make([]card.Card, len(rows))
	for i, r := range rows {
		cards[i] = r.toCard()
	}
	return cards, nil
}

// ListCategories returns the distinct card categories in alphabetical order.
func (s *SQLStore) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.db.SelectContext(ctx, &categories, "SELECT DISTINCT category FROM cards ORDER BY category"); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *SQLStore) GetCard(ctx context.Context, id string) (card.Card, error) {
	var row cardRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind("SELECT id, category, question, answer, options, explanation FROM cards WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return card.Card{}, ErrNotFound
	}
	if err != nil {
		return card.Card{}, err
	}
	return row.toCard(), nil
}

// ============================================================================
// Evaluations
// ============================================================================

type evaluationRow struct {
	ID         string  `db:"id"`
	LearnerID  string  `db:"learner_id"`
	Type       string  `db:"type"`
	TotalScore float64 `db:"total_score"`
	Passed     bool    `db:"passed"`
	Transcript string  `db:"transcript"`
	Payload    string  `db:"payload"`
	CreatedAt  int64   `db:"created_at"`
}

func (s *SQLStore) SaveEvaluation(ctx context.Context, e StoredEvaluation) error {
	payload, err := json.Marshal(e.Evaluation)
	if err != nil {
		return err
	}
	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO evaluations (id, learner_id, type, total_score, passed, transcript, payload, created_at)
		VALUES (:id, :learner_id, :type, :total_score, :passed, :transcript, :payload, :created_at)
	`, evaluationRow{
		ID:         e.ID,
		LearnerID:  e.LearnerID,
		Type:       e.Evaluation.Type,
		TotalScore: e.Evaluation.TotalScore,
		Passed:     e.Evaluation.Passed,
		Transcript: e.Transcript,
		Payload:    string(payload),
		CreatedAt:  e.CreatedAt.UnixMilli(),
	})
	return err
}

// ListEvaluations returns the learner's newest evaluations first.
func (s *SQLStore) ListEvaluations(ctx context.Context, learnerID string, limit int) ([]StoredEvaluation, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []evaluationRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT id, learner_id, type, total_score, passed, transcript, payload, created_at
		FROM evaluations WHERE learner_id = ? ORDER BY created_at DESC, id LIMIT ?
	`), learnerID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]StoredEvaluation, 0, len(rows))
	for _, r := range rows {
		var ev evaluation.Evaluation
		if err := json.Unmarshal([]byte(r.Payload), &ev); err != nil {
			return nil, fmt.Errorf("corrupt evaluation %s: %w", r.ID, err)
		}
		out = append(out, StoredEvaluation{
			ID:         r.ID,
			LearnerID:  r.LearnerID,
			Transcript: r.Transcript,
			Evaluation: ev,
			CreatedAt:  time.UnixMilli(r.CreatedAt).UTC(),
		})
	}
	return out, nil
}

// DeleteEvaluationsBefore prunes history older than cutoff.
func (s *SQLStore) DeleteEvaluationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM evaluations WHERE created_at < ?"), cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ============================================================================
// Prompts
// ============================================================================

// SavePrompt stores a learner's custom system prompt for an evaluation type.
// An empty prompt removes the override.
func (s *SQLStore) SavePrompt(ctx context.Context, learnerID, evalType, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		_, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM prompts WHERE learner_id = ? AND type = ?"), learnerID, evalType)
		return err
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO prompts (learner_id, type, prompt, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (learner_id, type) DO UPDATE SET prompt = excluded.prompt, updated_at = excluded.updated_at
	`), learnerID, evalType, prompt, s.now().UnixMilli())
	return err
}

func (s *SQLStore) GetPrompt(ctx context.Context, learnerID, evalType string) (string, error) {
	var prompt string
	err := s.db.GetContext(ctx, &prompt,
		s.db.Rebind("SELECT prompt FROM prompts WHERE learner_id = ? AND type = ?"), learnerID, evalType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return prompt, nil
}
