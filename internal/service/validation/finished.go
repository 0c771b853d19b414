package validation

import (
	"strings"

	"github.com/mrled/skyval/internal/board"
)

// CheckFinished reports whether every interior cell holds a height.
// It returns false as soon as a row contains the unresolved marker.
func CheckFinished(b board.Board) bool {
	for i := 0; i < board.Size; i++ {
		if strings.IndexByte(b.Row(i), board.Unresolved) >= 0 {
			return false
		}
	}
	return true
}
