// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fsp-trainer/backend/internal/importer"
	"github.com/fsp-trainer/backend/internal/llm"
	"github.com/fsp-trainer/backend/internal/service"
	"github.com/fsp-trainer/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	practice    *service.PracticeService
	evaluations *service.EvaluationService
	speech      *service.SpeechService
	logger      *slog.Logger
	validate    *validator.Validate
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(p *service.PracticeService, e *service.EvaluationService, s *service.SpeechService, logger *slog.Logger) *Handler {
	return &Handler{
		practice:    p,
		evaluations: e,
		speech:      s,
		logger:      logger,
		validate:    validator.New(),
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error" example:"card not found"`
	Code    string `json:"code" example:"not_found"`
	Details string `json:"details,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, msg, details string) {
	respondJSON(w, status, ErrorResponse{Error: msg, Code: code, Details: details})
}

// handleError maps service and store errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}

	var perr *llm.ProviderError
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", entity+" not found", "")
	case errors.Is(err, service.ErrUnknownType):
		respondError(w, http.StatusNotFound, "unknown_type", err.Error(), "")
	case errors.Is(err, service.ErrInvalidAudio),
		errors.Is(err, service.ErrEmptyText),
		errors.Is(err, importer.ErrUnsupportedFormat):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error(), "")
	case errors.Is(err, llm.ErrNotConfigured):
		respondError(w, http.StatusServiceUnavailable, "provider_not_configured", "language model provider is not configured", "")
	case errors.As(err, &perr):
		h.logger.Warn("provider error", "error", err, "entity", entity)
		respondError(w, http.StatusBadGateway, "provider_error", "language model provider failed", perr.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out", "")
	default:
		h.logger.Error("internal error", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal", "internal error", "")
	}
	return true
}

const maxBodyBytes = 36 << 20 // base64 of the 25 MB audio limit

// decodeAndValidate reads a JSON body into v and runs its validate tags.
// It writes a 400 and returns false on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid JSON body", err.Error())
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		respondError(w, http.StatusBadRequest, "validation_failed", "request validation failed", validationDetails(err))
		return false
	}
	return true
}

func validationDetails(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}
