package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
)

var audioExtensions = map[string]string{
	"audio/webm":  "webm",
	"audio/ogg":   "ogg",
	"audio/mpeg":  "mp3",
	"audio/mp3":   "mp3",
	"audio/wav":   "wav",
	"audio/x-wav": "wav",
	"audio/mp4":   "m4a",
	"audio/m4a":   "m4a",
}

// Transcribe sends recorded audio to the transcription endpoint and returns
// the German transcript.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("model", c.opts.STTModel); err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}
	if err := w.WriteField("language", "de"); err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}
	part, err := w.CreateFormFile("file", "audio."+audioExtension(mimeType))
	if err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to write form: %w", err)
	}

	body, err := c.doWithRetry(ctx, "transcription", "/v1/audio/transcriptions", w.FormDataContentType(), buf.Bytes())
	if err != nil {
		return "", err
	}

	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &ProviderError{Op: "transcription", Reason: "invalid JSON", Wrapped: err}
	}
	return resp.Text, nil
}

// Synthesize turns text into mp3 audio with the given voice, or the
// configured default when voice is empty.
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	if !c.Configured() {
		return nil, "", ErrNotConfigured
	}
	if voice == "" {
		voice = c.opts.Voice
	}

	payload, err := json.Marshal(map[string]string{
		"model":           c.opts.TTSModel,
		"input":           text,
		"voice":           voice,
		"response_format": "mp3",
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal speech request: %w", err)
	}

	audio, err := c.doWithRetry(ctx, "speech synthesis", "/v1/audio/speech", "application/json", payload)
	if err != nil {
		return nil, "", err
	}
	return audio, "audio/mpeg", nil
}

func audioExtension(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return "webm"
	}
	if ext, ok := audioExtensions[mediaType]; ok {
		return ext
	}
	return "webm"
}
