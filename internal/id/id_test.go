package id_test

import (
	"testing"

	"github.com/fsp-trainer/backend/internal/id"
)

func TestGenerateID(t *testing.T) {
	a := id.GenerateID()
	b := id.GenerateID()

	if len(a) != 32 {
		t.Errorf("expected 32 characters, got %d (%q)", len(a), a)
	}
	if a == b {
		t.Error("expected different IDs")
	}
}

func TestDeriveID(t *testing.T) {
	a := id.DeriveID("Kardiologie", "Was ist eine KHK?")
	b := id.DeriveID("Kardiologie", "Was ist eine KHK?")
	c := id.DeriveID("Kardiologie", "Was ist ein STEMI?")

	if a != b {
		t.Errorf("expected stable ID, got %q and %q", a, b)
	}
	if a == c {
		t.Error("expected different IDs for different content")
	}
	if len(a) != 32 {
		t.Errorf("expected 32 characters, got %d", len(a))
	}
}
