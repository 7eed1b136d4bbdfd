package grader

import (
	"context"
	"log/slog"

	"github.com/fsp-trainer/backend/internal/domain/evaluation"
	"github.com/fsp-trainer/backend/internal/llm"
)

//go:generate mockgen -destination=mock/completer_mock.go -package=mock_grader . Completer

// Completer sends one chat request to a language model and returns the raw
// decoded response. *llm.Client satisfies it; tests use a mock.
type Completer interface {
	Complete(ctx context.Context, req llm.ChatRequest) (any, error)
}

// Compile-time check: *llm.Client satisfies the Completer interface.
var _ Completer = (*llm.Client)(nil)

// Examiner grades simulated exam conversations and plays the examiner role.
type Examiner struct {
	llm    Completer
	logger *slog.Logger
}

// NewExaminer creates an examiner backed by the given model client.
func NewExaminer(c Completer, logger *slog.Logger) *Examiner {
	return &Examiner{llm: c, logger: logger}
}

const maxRetries = 2

// Submission is what the learner hands in for grading.
type Submission struct {
	Transcript   string
	Case         string
	CustomPrompt string // replaces the default grading rules when set
}

// Evaluate grades a transcript against the rubric.
//
// It retries once when nothing usable could be extracted (small models
// sometimes need a second try) and then falls back to the default evaluation.
// Only provider failures are returned as errors.
func (e *Examiner) Evaluate(ctx context.Context, r evaluation.Rubric, s Submission) (evaluation.Evaluation, evaluation.Source, error) {
	req := llm.ChatRequest{
		System:         buildEvaluationPrompt(r, s.Case, s.CustomPrompt),
		Messages:       []llm.Message{{Role: "user", Content: transcriptMessage(s.Transcript)}},
		ResponseFormat: r.ResponseFormat(),
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		raw, err := e.llm.Complete(ctx, req)
		if err != nil {
			return evaluation.Evaluation{}, evaluation.SourceFallback, err
		}

		ev, src := evaluation.Evaluate(raw, r)
		if src != evaluation.SourceFallback {
			return ev, src, nil
		}
		e.logger.Warn("no evaluation found in model output",
			"type", r.Type,
			"attempt", attempt+1,
		)
	}

	return evaluation.Default(r), evaluation.SourceFallback, nil
}

// Reply produces the examiner's next turn for a conversation history.
// A reply that cannot be recovered becomes a polite request to repeat.
func (e *Examiner) Reply(ctx context.Context, history []llm.Message, caseNotes, customPrompt string) (evaluation.Reply, error) {
	raw, err := e.llm.Complete(ctx, llm.ChatRequest{
		System:         buildExaminerPrompt(caseNotes, customPrompt),
		Messages:       history,
		ResponseFormat: evaluation.ReplyResponseFormat(),
		Temperature:    0.7,
	})
	if err != nil {
		return evaluation.Reply{}, err
	}

	reply, src := evaluation.ExtractReply(raw)
	if reply.Fallback {
		e.logger.Warn("no examiner reply found in model output", "source", src.String())
	}
	return reply, nil
}
