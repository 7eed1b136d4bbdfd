package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	// Storage
	DBDriver       string        `validate:"oneof=sqlite postgres"`
	DBDSN          string        `validate:"required"`
	RedisURL       string        // optional remote mirror, e.g. "redis://localhost:6379/0"
	MirrorDebounce time.Duration `validate:"gte=0"`

	// AI provider (OpenAI-compatible)
	LLMURL         string `validate:"required,url"`
	LLMAPIKey      string
	LLMModel       string `validate:"required"`
	STTModel       string `validate:"required"`
	TTSModel       string `validate:"required"`
	TTSVoice       string `validate:"required"`
	LLMConcurrency int    `validate:"min=1,max=32"`

	// Auth: HS256 secret of the hosted auth provider. Empty = single local learner.
	AuthJWTSecret string

	Timezone            string `validate:"required"`
	CardsFile           string
	EvaluationRetention time.Duration `validate:"gt=0"`
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	cfg := &Config{
		ServerAddress:       mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout:     mustGetDuration("SHUTDOWN_TIMEOUT"),
		DBDriver:            getenvDefault("DB_DRIVER", "sqlite"),
		DBDSN:               getenvDefault("DB_DSN", "fsp.db"),
		RedisURL:            os.Getenv("REDIS_URL"),
		MirrorDebounce:      getDurationDefault("MIRROR_DEBOUNCE", 800*time.Millisecond),
		LLMURL:              getenvDefault("LLM_URL", "https://api.openai.com"),
		LLMAPIKey:           os.Getenv("LLM_API_KEY"),
		LLMModel:            getenvDefault("LLM_MODEL", "gpt-4o-mini"),
		STTModel:            getenvDefault("STT_MODEL", "whisper-1"),
		TTSModel:            getenvDefault("TTS_MODEL", "tts-1"),
		TTSVoice:            getenvDefault("TTS_VOICE", "alloy"),
		LLMConcurrency:      getIntDefault("LLM_CONCURRENCY", 4),
		AuthJWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
		Timezone:            getenvDefault("TIMEZONE", "Europe/Berlin"),
		CardsFile:           os.Getenv("CARDS_FILE"),
		EvaluationRetention: getDurationDefault("EVALUATION_RETENTION", 90*24*time.Hour),
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Validate checks field constraints and that the timezone can be loaded.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("%s failed %q (%s)", fe.Field(), fe.Tag(), fe.Param()))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE=%q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the learner-facing timezone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}
