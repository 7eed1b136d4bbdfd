// internal/api/router.go
package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires every route. /health and /swagger/ stay public; the rest
// requires a bearer token when authSecret is set.
func NewRouter(h *Handler, authSecret string) http.Handler {
	protected := http.NewServeMux()

	// Practice
	protected.HandleFunc("GET /folders", h.listFolders)
	protected.HandleFunc("GET /categories", h.listCategories)
	protected.HandleFunc("GET /cards", h.listCards)
	protected.HandleFunc("POST /cards/import", h.importCards)
	protected.HandleFunc("GET /cards/export", h.exportCards)
	protected.HandleFunc("GET /practice/queue", h.getQueue)
	protected.HandleFunc("POST /practice/attempts", h.recordAttempt)
	protected.HandleFunc("GET /practice/progress/{cardID}", h.getProgress)
	protected.HandleFunc("GET /practice/stats", h.getStats)

	// Evaluations
	protected.HandleFunc("GET /rubrics", h.listRubrics)
	protected.HandleFunc("POST /evaluations/{type}", h.createEvaluation)
	protected.HandleFunc("GET /evaluations", h.listEvaluations)
	protected.HandleFunc("GET /prompts/{type}", h.getPrompt)
	protected.HandleFunc("PUT /prompts/{type}", h.updatePrompt)
	protected.HandleFunc("POST /conversation/reply", h.conversationReply)

	// Speech
	protected.HandleFunc("POST /speech/transcribe", h.transcribe)
	protected.HandleFunc("POST /speech/synthesize", h.synthesize)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health)
	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	mux.Handle("/", Auth(authSecret)(protected))

	// Middleware chain: CORS → mux
	return CORS(mux)
}

// health reports liveness.
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
