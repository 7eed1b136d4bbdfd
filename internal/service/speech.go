// internal/service/speech.go
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"github.com/fsp-trainer/backend/internal/id"
	"github.com/fsp-trainer/backend/internal/worker"
)

const (
	maxAudioBytes  = 25 << 20
	maxSpeechRunes = 4096
)

var (
	ErrInvalidAudio = errors.New("audio must be non-empty base64 up to 25 MB")
	ErrEmptyText    = errors.New("text must not be empty")
)

// Speech converts between audio and text. *llm.Client satisfies it.
type Speech interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, string, error)
}

// SpeechService validates audio payloads and forwards them to the provider
// through the shared pool.
type SpeechService struct {
	speech Speech
	pool   *worker.Pool[any]
	logger *slog.Logger
}

func NewSpeechService(sp Speech, pool *worker.Pool[any], logger *slog.Logger) *SpeechService {
	return &SpeechService{speech: sp, pool: pool, logger: logger}
}

// Transcribe decodes base64 audio (a data: URL prefix is accepted) and
// returns its transcript.
func (s *SpeechService) Transcribe(ctx context.Context, audioBase64, mimeType string) (string, error) {
	if i := strings.Index(audioBase64, ";base64,"); strings.HasPrefix(audioBase64, "data:") && i >= 0 {
		if mimeType == "" {
			mimeType = strings.TrimPrefix(audioBase64[:i], "data:")
		}
		audioBase64 = audioBase64[i+len(";base64,"):]
	}

	audio, err := base64.StdEncoding.DecodeString(strings.TrimSpace(audioBase64))
	if err != nil || len(audio) == 0 || len(audio) > maxAudioBytes {
		return "", ErrInvalidAudio
	}

	text, err := run(ctx, s.pool, id.GenerateID(), func(ctx context.Context) (string, error) {
		return s.speech.Transcribe(ctx, audio, mimeType)
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// SynthesizedAudio is base64 audio ready for the browser.
type SynthesizedAudio struct {
	AudioBase64 string `json:"audio_base64"`
	MimeType    string `json:"mime_type"`
}

// Synthesize speaks text with the given voice (empty = configured default).
func (s *SpeechService) Synthesize(ctx context.Context, text, voice string) (SynthesizedAudio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SynthesizedAudio{}, ErrEmptyText
	}
	if r := []rune(text); len(r) > maxSpeechRunes {
		text = string(r[:maxSpeechRunes])
	}

	out, err := run(ctx, s.pool, id.GenerateID(), func(ctx context.Context) (SynthesizedAudio, error) {
		audio, mimeType, err := s.speech.Synthesize(ctx, text, voice)
		if err != nil {
			return SynthesizedAudio{}, err
		}
		return SynthesizedAudio{
			AudioBase64: base64.StdEncoding.EncodeToString(audio),
			MimeType:    mimeType,
		}, nil
	})
	if err != nil {
		s.logger.Error("speech synthesis failed", "error", err)
	}
	return out, err
}
