package store

import (
	"context"
	"errors"
	"time"

	"github.com/fsp-trainer/backend/internal/domain/evaluation"
)

var (
	ErrNotFound = errors.New("not found")
)

// KV is a namespaced byte store. Get returns ErrNotFound for missing keys.
type KV interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Put(ctx context.Context, namespace, key string, value []byte) error
}

// StoredEvaluation is one graded attempt kept in the learner's history.
type StoredEvaluation struct {
	ID         string
	LearnerID  string
	Transcript string
	Evaluation evaluation.Evaluation
	CreatedAt  time.Time
}
