// internal/service/evaluation.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsp-trainer/backend/internal/domain/evaluation"
	"github.com/fsp-trainer/backend/internal/grader"
	"github.com/fsp-trainer/backend/internal/id"
	"github.com/fsp-trainer/backend/internal/llm"
	"github.com/fsp-trainer/backend/internal/store"
	"github.com/fsp-trainer/backend/internal/worker"
)

// ErrUnknownType is returned for evaluation types without a rubric.
var ErrUnknownType = errors.New("unknown evaluation type")

// Examiner grades transcripts and plays the examiner. *grader.Examiner
// satisfies it.
type Examiner interface {
	Evaluate(ctx context.Context, r evaluation.Rubric, s grader.Submission) (evaluation.Evaluation, evaluation.Source, error)
	Reply(ctx context.Context, history []llm.Message, caseNotes, customPrompt string) (evaluation.Reply, error)
}

// EvaluationStore is the persistence the evaluation service needs.
type EvaluationStore interface {
	SaveEvaluation(ctx context.Context, e store.StoredEvaluation) error
	ListEvaluations(ctx context.Context, learnerID string, limit int) ([]store.StoredEvaluation, error)
	DeleteEvaluationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	SavePrompt(ctx context.Context, learnerID, evalType, prompt string) error
	GetPrompt(ctx context.Context, learnerID, evalType string) (string, error)
}

// EvaluationRequest is one transcript handed in for grading.
type EvaluationRequest struct {
	LearnerID  string
	Type       string
	Transcript string
	Case       string
}

// PromptView is a learner's prompt override for one evaluation type.
type PromptView struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
	Custom bool   `json:"custom"`
}

// EvaluationService grades transcripts through the provider pool and keeps
// the learner's history and custom prompts.
type EvaluationService struct {
	examiner Examiner
	store    EvaluationStore
	pool     *worker.Pool[any]
	logger   *slog.Logger
	now      func() time.Time
}

// NewEvaluationService creates the service. pool bounds concurrent provider
// calls and may be shared with other services.
func NewEvaluationService(e Examiner, s EvaluationStore, pool *worker.Pool[any], logger *slog.Logger) *EvaluationService {
	return &EvaluationService{
		examiner: e,
		store:    s,
		pool:     pool,
		logger:   logger,
		now:      time.Now,
	}
}

// Evaluate grades the transcript and stores the result. A failure to store
// is logged; the learner still gets the evaluation.
func (s *EvaluationService) Evaluate(ctx context.Context, req EvaluationRequest) (store.StoredEvaluation, error) {
	rubric, ok := evaluation.Lookup(req.Type)
	if !ok {
		return store.StoredEvaluation{}, ErrUnknownType
	}

	jobID := id.GenerateID()
	sub := grader.Submission{
		Transcript:   req.Transcript,
		Case:         req.Case,
		CustomPrompt: s.customPrompt(ctx, req.LearnerID, req.Type),
	}

	ev, err := run(ctx, s.pool, jobID, func(ctx context.Context) (evaluation.Evaluation, error) {
		ev, src, err := s.examiner.Evaluate(ctx, rubric, sub)
		if err == nil {
			s.logger.Info("evaluation graded",
				"id", jobID,
				"type", req.Type,
				"source", src.String(),
				"total_score", ev.TotalScore,
			)
		}
		return ev, err
	})
	if err != nil {
		s.logger.Error("evaluation failed", "id", jobID, "type", req.Type, "error", err)
		return store.StoredEvaluation{}, err
	}

	stored := store.StoredEvaluation{
		ID:         jobID,
		LearnerID:  req.LearnerID,
		Transcript: req.Transcript,
		Evaluation: ev,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.SaveEvaluation(ctx, stored); err != nil {
		s.logger.Error("failed to save evaluation", "id", jobID, "error", err)
	}
	return stored, nil
}

// History returns the learner's newest evaluations first.
func (s *EvaluationService) History(ctx context.Context, learnerID string, limit int) ([]store.StoredEvaluation, error) {
	history, err := s.store.ListEvaluations(ctx, learnerID, limit)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []store.StoredEvaluation{}
	}
	return history, nil
}

// Reply produces the examiner's next turn, using the learner's custom
// examiner prompt when one is stored under the "examiner" type.
func (s *EvaluationService) Reply(ctx context.Context, learnerID string, history []llm.Message, caseNotes string) (evaluation.Reply, error) {
	prompt := s.customPrompt(ctx, learnerID, PromptTypeExaminer)
	return run(ctx, s.pool, id.GenerateID(), func(ctx context.Context) (evaluation.Reply, error) {
		return s.examiner.Reply(ctx, history, caseNotes, prompt)
	})
}

// PromptTypeExaminer is the prompt slot for conversation replies.
const PromptTypeExaminer = "examiner"

func validPromptType(t string) bool {
	if t == PromptTypeExaminer {
		return true
	}
	_, ok := evaluation.Lookup(t)
	return ok
}

// Prompt returns the learner's override for a type; Custom is false when
// the built-in rules apply.
func (s *EvaluationService) Prompt(ctx context.Context, learnerID, promptType string) (PromptView, error) {
	if !validPromptType(promptType) {
		return PromptView{}, ErrUnknownType
	}
	prompt, err := s.store.GetPrompt(ctx, learnerID, promptType)
	if errors.Is(err, store.ErrNotFound) {
		return PromptView{Type: promptType}, nil
	}
	if err != nil {
		return PromptView{}, err
	}
	return PromptView{Type: promptType, Prompt: prompt, Custom: true}, nil
}

// SetPrompt stores an override; an empty prompt restores the built-in rules.
func (s *EvaluationService) SetPrompt(ctx context.Context, learnerID, promptType, prompt string) (PromptView, error) {
	if !validPromptType(promptType) {
		return PromptView{}, ErrUnknownType
	}
	if err := s.store.SavePrompt(ctx, learnerID, promptType, prompt); err != nil {
		return PromptView{}, err
	}
	return s.Prompt(ctx, learnerID, promptType)
}

// Prune deletes evaluations older than retention.
func (s *EvaluationService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := s.store.DeleteEvaluationsBefore(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to prune evaluations: %w", err)
	}
	return n, nil
}

func (s *EvaluationService) customPrompt(ctx context.Context, learnerID, promptType string) string {
	prompt, err := s.store.GetPrompt(ctx, learnerID, promptType)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("failed to load custom prompt, using default", "type", promptType, "error", err)
	}
	return prompt
}

// run executes fn on the shared provider pool and restores its result type.
func run[T any](ctx context.Context, pool *worker.Pool[any], jobID string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	out, err := pool.Do(ctx, jobID, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	v, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected result type %T", out)
	}
	return v, nil
}
