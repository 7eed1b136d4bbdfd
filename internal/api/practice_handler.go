package api

import (
	"net/http"
	"strconv"

	"github.com/fsp-trainer/backend/internal/domain/card"
	"github.com/fsp-trainer/backend/internal/domain/folder"
	practicesession "github.com/fsp-trainer/backend/internal/domain/practice_session"
	"github.com/fsp-trainer/backend/internal/importer"
)

// ── Request / Response types ────────────────────────────────────────────────

type RecordAttemptRequest struct {
	CardID  string `json:"card_id" validate:"required" example:"3f2a9c0e4b1d4e7f8a6b5c4d3e2f1a0b"`
	Correct *bool  `json:"correct" validate:"required" example:"true"`
}

type QueueResponse struct {
	Category string      `json:"category" example:"Kardiologie"`
	Folder   folder.ID   `json:"folder" example:"regular"`
	Cards    []card.Card `json:"cards"`
}

const maxImportBytes = 10 << 20

// ── Handlers ────────────────────────────────────────────────────────────────

// listFolders returns the static folder catalogue.
// @Summary      List folders
// @Description  Folders are fixed predicates over a card's progress (new, unsure, streaks, diamonds).
// @Tags         Practice
// @Produce      json
// @Success      200  {array}  folder.Folder
// @Router       /folders [get]
func (h *Handler) listFolders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.practice.Folders())
}

// @Summary      List card categories
// @Tags         Cards
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {object}  ErrorResponse
// @Router       /categories [get]
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.practice.Categories(r.Context())
	if h.handleError(w, err, "categories") {
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, categories)
}

// @Summary      List cards
// @Tags         Cards
// @Produce      json
// @Param        category  query     string  false  "Category filter; empty or 'all' for every card"
// @Success      200       {array}   card.Card
// @Failure      500       {object}  ErrorResponse
// @Router       /cards [get]
func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.practice.Cards(r.Context(), r.URL.Query().Get("category"))
	if h.handleError(w, err, "cards") {
		return
	}
	if cards == nil {
		cards = []card.Card{}
	}
	respondJSON(w, http.StatusOK, cards)
}

// importCards upserts the cards of an uploaded deck.
// @Summary      Import cards
// @Description  Upload an .xlsx (header row: category, question, answer, options, explanation) or .json deck.
// @Tags         Cards
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Deck file"
// @Success      200   {object}  importer.Result
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /cards/import [post]
func (h *Handler) importCards(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "expected multipart form with a file field", err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "missing file field", err.Error())
		return
	}
	defer file.Close()

	res, err := h.practice.ImportCards(r.Context(), file, header.Filename)
	if h.handleError(w, err, "cards") {
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// exportCards downloads the cards of a category as a workbook.
// @Summary      Export cards
// @Tags         Cards
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        category  query     string  false  "Category filter"
// @Success      200       {file}    file
// @Failure      500       {object}  ErrorResponse
// @Router       /cards/export [get]
func (h *Handler) exportCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.practice.Cards(r.Context(), r.URL.Query().Get("category"))
	if h.handleError(w, err, "cards") {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="fsp-karten.xlsx"`)
	if err := importer.ExportExcel(w, cards); err != nil {
		h.logger.Error("failed to export cards", "error", err)
	}
}

// getQueue builds the learner's practice queue.
// @Summary      Practice queue
// @Description  Without a folder (or folder=regular) the interleaved daily queue is returned; otherwise the shuffled members of that folder.
// @Tags         Practice
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        folder    query     string  false  "Folder ID or 'regular'"
// @Param        limit     query     int     false  "Maximum number of cards"
// @Success      200       {object}  QueueResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /practice/queue [get]
func (h *Handler) getQueue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := practicesession.DefaultFilter()
	f.Category = q.Get("category")

	if raw := q.Get("folder"); raw != "" && raw != string(practicesession.FolderRegular) {
		id, err := folder.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_folder", err.Error(), "")
			return
		}
		f.Folder = id
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer", "")
			return
		}
		f.Limit = limit
	}

	cards, err := h.practice.Queue(r.Context(), learnerID(r), f)
	if h.handleError(w, err, "cards") {
		return
	}
	respondJSON(w, http.StatusOK, QueueResponse{Category: f.Category, Folder: f.Folder, Cards: cards})
}

// recordAttempt applies one answer to a card.
// @Summary      Record an answer
// @Tags         Practice
// @Accept       json
// @Produce      json
// @Param        body  body      RecordAttemptRequest  true  "Answer"
// @Success      200   {object}  service.AttemptResult
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /practice/attempts [post]
func (h *Handler) recordAttempt(w http.ResponseWriter, r *http.Request) {
	var req RecordAttemptRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.practice.RecordAttempt(r.Context(), learnerID(r), req.CardID, *req.Correct)
	if h.handleError(w, err, "card") {
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// @Summary      Card progress
// @Tags         Practice
// @Produce      json
// @Param        cardID  path      string  true  "Card ID"
// @Success      200     {object}  service.ProgressView
// @Failure      404     {object}  ErrorResponse
// @Router       /practice/progress/{cardID} [get]
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	view, err := h.practice.Progress(r.Context(), learnerID(r), r.PathValue("cardID"))
	if h.handleError(w, err, "card") {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// @Summary      Practice statistics
// @Description  Remaining new cards today, today's answers and card counts per folder.
// @Tags         Practice
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Success      200       {object}  service.Stats
// @Failure      500       {object}  ErrorResponse
// @Router       /practice/stats [get]
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.practice.Stats(r.Context(), learnerID(r), r.URL.Query().Get("category"))
	if h.handleError(w, err, "stats") {
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
