package boardid

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mrled/skyval/internal/board"
)

const (
	// IDVersion is the current version of the board ID algorithm
	IDVersion = "v1"
)

// Calculate generates a board ID by hashing its rows, top to bottom.
// The result is formatted as: idversion:base64(sha256(rows joined by newlines)).
// Two boards get the same ID exactly when every cell matches.
func Calculate(b board.Board) string {
	hash := sha256.Sum256([]byte(b.String()))
	encoded := base64.StdEncoding.EncodeToString(hash[:])
	return fmt.Sprintf("%s:%s", IDVersion, encoded)
}

// Parse checks that id was produced by a supported algorithm version and
// returns its hash part
func Parse(id string) (string, error) {
	version, hash, ok := strings.Cut(id, ":")
	if !ok {
		return "", fmt.Errorf("invalid board ID %q: missing version prefix", id)
	}
	if version != IDVersion {
		return "", fmt.Errorf("unsupported board ID version %q", version)
	}

	decoded, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return "", fmt.Errorf("invalid board ID %q: %w", id, err)
	}
	if len(decoded) != sha256.Size {
		return "", fmt.Errorf("invalid board ID %q: hash has %d bytes, expected %d", id, len(decoded), sha256.Size)
	}

	return hash, nil
}
