package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsp-trainer/backend/internal/api"
	"github.com/fsp-trainer/backend/internal/domain/card"
	"github.com/fsp-trainer/backend/internal/domain/evaluation"
	"github.com/fsp-trainer/backend/internal/grader"
	"github.com/fsp-trainer/backend/internal/llm"
	"github.com/fsp-trainer/backend/internal/service"
	"github.com/fsp-trainer/backend/internal/store"
	"github.com/fsp-trainer/backend/internal/worker"
)

type stubExaminer struct {
	err error
}

func (s *stubExaminer) Evaluate(_ context.Context, r evaluation.Rubric, _ grader.Submission) (evaluation.Evaluation, evaluation.Source, error) {
	if s.err != nil {
		return evaluation.Evaluation{}, evaluation.SourceFallback, s.err
	}
	return evaluation.Default(r), evaluation.SourceDirect, nil
}

func (s *stubExaminer) Reply(_ context.Context, _ []llm.Message, _, _ string) (evaluation.Reply, error) {
	if s.err != nil {
		return evaluation.Reply{}, s.err
	}
	return evaluation.Reply{ExaminerReply: "Haben Sie Vorerkrankungen?"}, nil
}

type stubSpeech struct{}

func (stubSpeech) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return "Ich habe Kopfschmerzen.", nil
}

func (stubSpeech) Synthesize(_ context.Context, text, _ string) ([]byte, string, error) {
	return []byte(text), "audio/mpeg", nil
}

type testServer struct {
	handler http.Handler
	db      *store.SQLStore
}

func newTestServer(t *testing.T, ex service.Examiner, secret string) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := store.Open(store.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pool := worker.NewPool[any](2, 4)
	t.Cleanup(pool.Close)

	h := api.NewHandler(
		service.NewPracticeService(db, db, logger),
		service.NewEvaluationService(ex, db, pool, logger),
		service.NewSpeechService(stubSpeech{}, pool, logger),
		logger,
	)
	return &testServer{handler: api.NewRouter(h, secret), db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func seed(t *testing.T, db *store.SQLStore) {
	t.Helper()
	require.NoError(t, db.UpsertCards(context.Background(), []card.Card{
		{ID: "k1", Category: "Kardiologie", Question: "Was ist eine Angina pectoris?", Answer: "Brustenge"},
		{ID: "k2", Category: "Kardiologie", Question: "Was ist ein STEMI?", Answer: "ST-Hebungsinfarkt"},
		{ID: "p1", Category: "Pneumologie", Question: "Was ist COPD?", Answer: "Chronisch obstruktive Lungenerkrankung"},
	}))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubExaminer{}, "")
	rec := srv.do(t, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &stubExaminer{}, "secret")
	rec := srv.do(t, http.MethodOptions, "/practice/queue", nil, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPracticeFlow(t *testing.T) {
	srv := newTestServer(t, &stubExaminer{}, "")
	seed(t, srv.db)

	rec := srv.do(t, http.MethodGet, "/categories", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Kardiologie", "Pneumologie"}, decode[[]string](t, rec))

	rec = srv.do(t, http.MethodGet, "/practice/queue?category=Kardiologie", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	queue := decode[api.QueueResponse](t, rec)
	assert.Len(t, queue.Cards, 2)

	rec = srv.do(t, http.MethodPost, "/practice/attempts", map[string]any{"card_id": "k1", "correct": true}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	attempt := decode[service.AttemptResult](t, rec)
	assert.Equal(t, "one_right", string(attempt.Folder))
	assert.Equal(t, 1, attempt.Progress.Streak)

	rec = srv.do(t, http.MethodGet, "/practice/progress/k1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[service.ProgressView](t, rec)
	assert.Equal(t, 1, view.Progress.Attempts)

	rec = srv.do(t, http.MethodGet, "/practice/queue?category=Kardiologie&folder=one_right", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	queue = decode[api.QueueResponse](t, rec)
	require.Len(t, queue.Cards, 1)
	assert.Equal(t, "k1", queue.Cards[0].ID)
}

func TestPracticeErrors(t *testing.T) {
	srv := newTestServer(t, &stubExaminer{}, "")
	seed(t, srv.db)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"unknown folder", http.MethodGet, "/practice/queue?folder=gold", nil, http.StatusBadRequest, "invalid_folder"},
		{"bad limit", http.MethodGet, "/practice/queue?limit=-1", nil, http.StatusBadRequest, "invalid_limit"},
		{"missing correct", http.MethodPost, "/practice/attempts", map[string]any{"card_id": "k1"}, http.StatusBadRequest, "validation_failed"},
		{"unknown card", http.MethodPost, "/practice/attempts", map[string]any{"card_id": "nope", "correct": false}, http.StatusNotFound, "not_found"},
		{"unknown progress", http.MethodGet, "/practice/progress/nope", nil, http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decode[api.ErrorResponse](t, rec).Code)
		})
	}
}

func TestImportAndExportCards(t *testing.T) {
	srv := newTestServer(t, &stubExaminer{}, "")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "deck.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(`[{"category":"Neurologie","question":"Was ist ein Apoplex?","answer":"Schlaganfall"}]`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/cards/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(1), decode[map[string]any](t, rec)["imported"])

	rec = srv.do(t, http.MethodGet, "/cards?category=Neurologie", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cards := decode[[]card.Card](t, rec)
	require.Len(t, cards, 1)
	assert.Len(t, cards[0].ID, 32)

	rec = srv.do(t, http.MethodGet, "/cards/export?category=Neurologie", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "fsp-karten.xlsx")
	assert.Equal(t, "PK", rec.Body.String()[:2])
}

func TestImportRejectsUnknownFormat(t *testing.T) {
	srv := newTestServer(t, &stubExaminer{}, "")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "deck.csv")
	require.NoError(t, err)
	_, _ = part.Write([]byte("a,b"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/cards/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decode[api.ErrorResponse](t, rec).Code)
}

func TestEvaluations(t *testing.T) {
	srv := newTestServer(t, &stubExaminer{}, "")

	rec := srv.do(t, http.MethodGet, "/rubrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rubrics := decode[[]api.RubricResponse](t, rec)
	require.Len(t, rubrics, 2)
	assert.Equal(t, "arzt_patient", rubrics[0].Type)
	assert.Len(t, rubrics[0].Criteria, 8)

	rec = srv.do(t, http.MethodPost, "/evaluations/arzt_patient", map[string]string{"transcript": "Guten Tag, was führt Sie zu uns?"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[api.EvaluationResponse](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "arzt_patient", created.Evaluation.Type)
	assert.Len(t, created.Evaluation.Criteria, 8)

	rec = srv.do(t, http.MethodGet, "/evaluations?limit=5", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]api.EvaluationResponse](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, created.ID, history[0].ID)
	assert.Equal(t, "Guten Tag, was führt Sie zu uns?", history[0].Transcript)
}

func TestEvaluationErrors(t *testing.T) {
	tests := []struct {
		name     string
		examiner *stubExaminer
		path     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"unknown type", &stubExaminer{}, "/evaluations/zahnarzt", map[string]string{"transcript": "x"}, http.StatusNotFound, "unknown_type"},
		{"empty transcript", &stubExaminer{}, "/evaluations/arzt_arzt", map[string]string{"transcript": ""}, http.StatusBadRequest, "validation_failed"},
		{"not configured", &stubExaminer{err: llm.ErrNotConfigured}, "/evaluations/arzt_arzt", map[string]string{"transcript": "x"}, http.StatusServiceUnavailable, "provider_not_configured"},
		{"provider failure", &stubExaminer{err: &llm.ProviderError{Op: "chat", Status: 500}}, "/evaluations/arzt_arzt", map[string]string{"transcript": "x"}, http.StatusBadGateway, "provider_error"},
		{"bad history role", &stubExaminer{}, "/conversation/reply", map[string]any{"history": []map[string]string{{"role": "system", "content": "x"}}}, http.StatusBadRequest, "validation_failed"},
		{"empty history", &stubExaminer{}, "/conversation/reply", map[string]any{"history": []map[string]string{}}, http.StatusBadRequest, "validation_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.examiner, "")
			rec := srv.do(t, http.MethodPost, tt.path, tt.body, nil)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantErr, decode[api.ErrorResponse](t, rec).Code)
		})
	}
}

func TestPromptsAndReply(t *testing.T) {
	srv := newTestServer(t, &stubExaminer{}, "")

	rec := srv.do(t, http.MethodPut, "/prompts/arzt_arzt", map[string]string{"prompt": "Streng bewerten."}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[service.PromptView](t, rec).Custom)

	rec = srv.do(t, http.MethodGet, "/prompts/arzt_arzt", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Streng bewerten.", decode[service.PromptView](t, rec).Prompt)

	rec = srv.do(t, http.MethodGet, "/prompts/unbekannt", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/conversation/reply", map[string]any{
		"history": []map[string]string{{"role": "user", "content": "Guten Tag."}},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Haben Sie Vorerkrankungen?", decode[evaluation.Reply](t, rec).ExaminerReply)
}

func TestSpeech(t *testing.T) {
	srv := newTestServer(t, &stubExaminer{}, "")

	audio := base64.StdEncoding.EncodeToString([]byte("RIFF....WAVE"))
	rec := srv.do(t, http.MethodPost, "/speech/transcribe", map[string]string{"audio_base64": audio, "mime_type": "audio/wav"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Ich habe Kopfschmerzen.", decode[api.TranscribeResponse](t, rec).Transcript)

	rec = srv.do(t, http.MethodPost, "/speech/transcribe", map[string]string{"audio_base64": "%%%"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/speech/synthesize", map[string]string{"text": "Hallo"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[service.SynthesizedAudio](t, rec)
	assert.Equal(t, "audio/mpeg", out.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("Hallo")), out.AudioBase64)

	rec = srv.do(t, http.MethodPost, "/speech/synthesize", map[string]string{"text": "Hallo", "voice": "robot"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func signToken(t *testing.T, secret, subject string, method jwt.SigningMethod) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	const secret = "test-secret"
	srv := newTestServer(t, &stubExaminer{}, secret)
	seed(t, srv.db)

	bearer := func(token string) http.Header {
		return http.Header{"Authorization": {"Bearer " + token}}
	}

	tests := []struct {
		name     string
		header   http.Header
		wantCode int
	}{
		{"missing token", nil, http.StatusUnauthorized},
		{"wrong secret", bearer(signToken(t, "other", "anna", jwt.SigningMethodHS256)), http.StatusUnauthorized},
		{"wrong algorithm", bearer(signToken(t, secret, "anna", jwt.SigningMethodHS512)), http.StatusUnauthorized},
		{"missing subject", bearer(signToken(t, secret, "", jwt.SigningMethodHS256)), http.StatusUnauthorized},
		{"valid", bearer(signToken(t, secret, "anna", jwt.SigningMethodHS256)), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, "/practice/stats", nil, tt.header)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}

	t.Run("health stays public", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuth_LearnersAreIsolated(t *testing.T) {
	const secret = "test-secret"
	srv := newTestServer(t, &stubExaminer{}, secret)
	seed(t, srv.db)

	anna := http.Header{"Authorization": {"Bearer " + signToken(t, secret, "anna", jwt.SigningMethodHS256)}}
	ben := http.Header{"Authorization": {"Bearer " + signToken(t, secret, "ben", jwt.SigningMethodHS256)}}

	rec := srv.do(t, http.MethodPost, "/practice/attempts", map[string]any{"card_id": "k1", "correct": true}, anna)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/practice/progress/k1", nil, anna)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[service.ProgressView](t, rec).Progress.Attempts)

	rec = srv.do(t, http.MethodGet, "/practice/progress/k1", nil, ben)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[service.ProgressView](t, rec).Progress.Attempts)
}
