package id

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID creates a unique 32-character lowercase hex ID.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

var cardNamespace = uuid.MustParse("6f1c5e0a-8d0b-4c55-9a57-2b8e0c4f7d11")

// DeriveID returns a stable 32-character ID for the given parts, so that
// re-importing the same content keeps its ID.
func DeriveID(parts ...string) string {
	name := strings.Join(parts, "\x1f")
	return strings.ReplaceAll(uuid.NewSHA1(cardNamespace, []byte(name)).String(), "-", "")
}
