package validation

import (
	"github.com/mrled/skyval/internal/board"
)

// CheckLineVisibility counts the buildings visible from the start of line
// looking inward and compares the count with pivot.
//
// Only the interior positions 1 through board.InteriorSize are read; the hint
// characters at either end are ignored. A building is visible when it is
// strictly taller than every building before it. To look from the other end,
// pass board.Reverse(line).
//
// A line whose interior holds anything other than height digits is never
// consistent with a hint, so the result is false.
func CheckLineVisibility(line string, pivot int) bool {
	if len(line) < board.Size {
		return false
	}

	previous := 0
	visible := 0
	for _, c := range []byte(line[1 : board.Size-1]) {
		if !board.IsHeight(c) {
			return false
		}
		height := int(c - '0')
		if height > previous {
			visible++
			previous = height
		}
	}

	return visible == pivot
}

// CheckHorizontalVisibility checks every hinted row of b from both ends.
// Rows with no hint on either end are skipped.
func CheckHorizontalVisibility(b board.Board) bool {
	for i := 1; i <= board.InteriorSize; i++ {
		row := b.Row(i)
		left, right := row[0], row[board.Size-1]
		if left == board.Filler && right == board.Filler {
			continue
		}

		if left != board.Filler {
			if !CheckLineVisibility(row, hintValue(left)) {
				return false
			}
		}

		if right != board.Filler {
			reversed := board.Reverse(row)
			if !CheckLineVisibility(reversed, hintValue(reversed[0])) {
				return false
			}
		}
	}
	return true
}

// CheckVerticalVisibility checks every hinted column of b from both ends by
// transposing the board and running the horizontal pass on it.
func CheckVerticalVisibility(b board.Board) bool {
	return CheckHorizontalVisibility(b.Columns())
}

func hintValue(c byte) int {
	return int(c - '0')
}
