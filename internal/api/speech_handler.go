package api

import (
	"net/http"
)

// ── Request / Response types ────────────────────────────────────────────────

type TranscribeRequest struct {
	AudioBase64 string `json:"audio_base64" validate:"required"`
	MimeType    string `json:"mime_type" example:"audio/webm"`
}

type TranscribeResponse struct {
	Transcript string `json:"transcript" example:"Ich habe seit gestern starke Bauchschmerzen."`
}

type SynthesizeRequest struct {
	Text  string `json:"text" validate:"required,max=4096" example:"Guten Tag, was führt Sie heute zu mir?"`
	Voice string `json:"voice" validate:"omitempty,oneof=alloy ash coral echo fable nova onyx sage shimmer" example:"nova"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// @Summary      Speech to text
// @Tags         Speech
// @Accept       json
// @Produce      json
// @Param        body  body      TranscribeRequest  true  "Base64 audio"
// @Success      200   {object}  TranscribeResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /speech/transcribe [post]
func (h *Handler) transcribe(w http.ResponseWriter, r *http.Request) {
	var req TranscribeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	text, err := h.speech.Transcribe(r.Context(), req.AudioBase64, req.MimeType)
	if h.handleError(w, err, "transcript") {
		return
	}
	respondJSON(w, http.StatusOK, TranscribeResponse{Transcript: text})
}

// @Summary      Text to speech
// @Tags         Speech
// @Accept       json
// @Produce      json
// @Param        body  body      SynthesizeRequest  true  "Text to speak"
// @Success      200   {object}  service.SynthesizedAudio
// @Failure      400   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Router       /speech/synthesize [post]
func (h *Handler) synthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	audio, err := h.speech.Synthesize(r.Context(), req.Text, req.Voice)
	if h.handleError(w, err, "audio") {
		return
	}
	respondJSON(w, http.StatusOK, audio)
}
