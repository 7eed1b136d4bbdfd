package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fsp-trainer/backend/internal/domain/evaluation"
	"github.com/fsp-trainer/backend/internal/llm"
	"github.com/fsp-trainer/backend/internal/service"
	"github.com/fsp-trainer/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateEvaluationRequest struct {
	Transcript string `json:"transcript" validate:"required,max=60000" example:"Guten Tag, mein Name ist Dr. Weber. Was führt Sie zu uns?"`
	Case       string `json:"case" validate:"max=4000" example:"58-jähriger Patient mit Thoraxschmerz"`
}

type EvaluationResponse struct {
	ID         string                `json:"id" example:"3f2a9c0e4b1d4e7f8a6b5c4d3e2f1a0b"`
	CreatedAt  time.Time             `json:"created_at"`
	Transcript string                `json:"transcript,omitempty"`
	Evaluation evaluation.Evaluation `json:"evaluation"`
}

func newEvaluationResponse(e store.StoredEvaluation, withTranscript bool) EvaluationResponse {
	resp := EvaluationResponse{ID: e.ID, CreatedAt: e.CreatedAt, Evaluation: e.Evaluation}
	if withTranscript {
		resp.Transcript = e.Transcript
	}
	return resp
}

type RubricResponse struct {
	Type       string   `json:"type" example:"arzt_patient"`
	Title      string   `json:"title" example:"Arzt-Patienten-Gespräch"`
	Criteria   []string `json:"criteria"`
	MaxScore   float64  `json:"max_score" example:"20"`
	PassCutoff float64  `json:"pass_cutoff" example:"12"`
}

type UpdatePromptRequest struct {
	Prompt string `json:"prompt" validate:"max=8000" example:"Bewerte besonders streng die Fachterminologie."`
}

type ConversationTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant" example:"user"`
	Content string `json:"content" validate:"required,max=8000" example:"Guten Tag, was führt Sie zu mir?"`
}

type ConversationReplyRequest struct {
	History []ConversationTurn `json:"history" validate:"required,min=1,max=100,dive"`
	Case    string             `json:"case" validate:"max=4000" example:"Patientin mit Fieber seit drei Tagen"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// @Summary      List rubrics
// @Description  Evaluation types with their criteria, maximum and pass cutoff.
// @Tags         Evaluations
// @Produce      json
// @Success      200  {array}  RubricResponse
// @Router       /rubrics [get]
func (h *Handler) listRubrics(w http.ResponseWriter, r *http.Request) {
	rubrics := evaluation.Rubrics()
	resp := make([]RubricResponse, len(rubrics))
	for i, rb := range rubrics {
		resp[i] = RubricResponse{
			Type:       rb.Type,
			Title:      rb.Title,
			Criteria:   rb.Names(),
			MaxScore:   rb.MaxTotal,
			PassCutoff: rb.PassCutoff,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// createEvaluation grades a transcript.
// @Summary      Evaluate a transcript
// @Description  Grades the transcript with the language model. The result always has the rubric's criteria, even when the model output is unusable.
// @Tags         Evaluations
// @Accept       json
// @Produce      json
// @Param        type  path      string                   true  "Evaluation type (arzt_patient, arzt_arzt)"
// @Param        body  body      CreateEvaluationRequest  true  "Transcript"
// @Success      201   {object}  EvaluationResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /evaluations/{type} [post]
func (h *Handler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	var req CreateEvaluationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	stored, err := h.evaluations.Evaluate(r.Context(), service.EvaluationRequest{
		LearnerID:  learnerID(r),
		Type:       r.PathValue("type"),
		Transcript: req.Transcript,
		Case:       req.Case,
	})
	if h.handleError(w, err, "evaluation") {
		return
	}
	respondJSON(w, http.StatusCreated, newEvaluationResponse(stored, false))
}

// @Summary      Evaluation history
// @Tags         Evaluations
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of entries (default 50)"
// @Success      200    {array}   EvaluationResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /evaluations [get]
func (h *Handler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 500", "")
			return
		}
		limit = n
	}

	history, err := h.evaluations.History(r.Context(), learnerID(r), limit)
	if h.handleError(w, err, "evaluations") {
		return
	}
	resp := make([]EvaluationResponse, len(history))
	for i, e := range history {
		resp[i] = newEvaluationResponse(e, true)
	}
	respondJSON(w, http.StatusOK, resp)
}

// @Summary      Get custom prompt
// @Tags         Evaluations
// @Produce      json
// @Param        type  path      string  true  "Evaluation type or 'examiner'"
// @Success      200   {object}  service.PromptView
// @Failure      404   {object}  ErrorResponse
// @Router       /prompts/{type} [get]
func (h *Handler) getPrompt(w http.ResponseWriter, r *http.Request) {
	view, err := h.evaluations.Prompt(r.Context(), learnerID(r), r.PathValue("type"))
	if h.handleError(w, err, "prompt") {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// updatePrompt replaces the grading rules for one type; an empty prompt
// restores the defaults.
// @Summary      Set custom prompt
// @Tags         Evaluations
// @Accept       json
// @Produce      json
// @Param        type  path      string               true  "Evaluation type or 'examiner'"
// @Param        body  body      UpdatePromptRequest  true  "Prompt"
// @Success      200   {object}  service.PromptView
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /prompts/{type} [put]
func (h *Handler) updatePrompt(w http.ResponseWriter, r *http.Request) {
	var req UpdatePromptRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.evaluations.SetPrompt(r.Context(), learnerID(r), r.PathValue("type"), req.Prompt)
	if h.handleError(w, err, "prompt") {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// conversationReply returns the examiner's next turn.
// @Summary      Examiner reply
// @Tags         Evaluations
// @Accept       json
// @Produce      json
// @Param        body  body      ConversationReplyRequest  true  "Conversation so far"
// @Success      200   {object}  evaluation.Reply
// @Failure      400   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /conversation/reply [post]
func (h *Handler) conversationReply(w http.ResponseWriter, r *http.Request) {
	var req ConversationReplyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	history := make([]llm.Message, len(req.History))
	for i, turn := range req.History {
		history[i] = llm.Message{Role: turn.Role, Content: turn.Content}
	}

	reply, err := h.evaluations.Reply(r.Context(), learnerID(r), history, req.Case)
	if h.handleError(w, err, "reply") {
		return
	}
	respondJSON(w, http.StatusOK, reply)
}
