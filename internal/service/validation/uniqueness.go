package validation

import (
	"github.com/mrled/skyval/internal/board"
)

// CheckRowUniqueness reports whether the interior cells of each row hold
// pairwise distinct heights. Columns are not examined here.
func CheckRowUniqueness(b board.Board) bool {
	for i := 1; i <= board.InteriorSize; i++ {
		if !isUnique(b.Interior(i)) {
			return false
		}
	}
	return true
}

// CheckColumnUniqueness is the column counterpart of CheckRowUniqueness
func CheckColumnUniqueness(b board.Board) bool {
	return CheckRowUniqueness(b.Columns())
}

// isUnique checks whether no byte occurs twice in s
func isUnique(s string) bool {
	seen := make(map[byte]struct{}, len(s))
	for i := 0; i < len(s); i++ {
		seen[s[i]] = struct{}{}
	}
	return len(seen) == len(s)
}
