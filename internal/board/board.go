// Package board holds the Skyscrapers board model: a 7x7 grid whose outer
// ring carries visibility hints and whose 5x5 interior carries building heights.
package board

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the width and height of a board, hints included
	Size = 7
	// InteriorSize is the width and height of the building grid
	InteriorSize = Size - 2

	// Filler marks an outer-ring position that carries no hint
	Filler = '*'
	// Unresolved marks an interior cell whose height is not yet known
	Unresolved = '?'

	MinHeight = '1'
	MaxHeight = '5'
)

// ErrMalformedBoard is wrapped by every shape or alphabet error from Parse
var ErrMalformedBoard = errors.New("malformed board")

// Board is an immutable 7x7 Skyscrapers board.
// Row 0 and row Size-1 are the top and bottom hint rows; column 0 and
// column Size-1 of the remaining rows are the left and right hints.
type Board struct {
	rows [Size]string
}

// Parse builds a Board from its rows, trimming any trailing line terminator.
// It rejects boards of the wrong shape and characters outside the alphabet.
func Parse(rows []string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrMalformedBoard, Size, len(rows))
	}

	for i, row := range rows {
		row = strings.TrimRight(row, "\r\n")
		if len(row) != Size {
			return b, fmt.Errorf("%w: row %d has width %d, expected %d", ErrMalformedBoard, i, len(row), Size)
		}
		for j := 0; j < Size; j++ {
			if err := checkCell(row[j], IsOuter(i, j)); err != nil {
				return b, fmt.Errorf("%w: row %d column %d: %v", ErrMalformedBoard, i, j, err)
			}
		}
		b.rows[i] = row
	}

	return b, nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(rows ...string) Board {
	b, err := Parse(rows)
	if err != nil {
		panic(err)
	}
	return b
}

func checkCell(c byte, outer bool) error {
	switch {
	case IsHeight(c):
		return nil
	case c == Filler:
		if !outer {
			return fmt.Errorf("filler %q is only allowed in the outer ring", c)
		}
		return nil
	case c == Unresolved:
		if outer {
			return fmt.Errorf("unresolved marker %q is only allowed in the interior", c)
		}
		return nil
	default:
		return fmt.Errorf("unexpected character %q", c)
	}
}

// IsOuter reports whether the position (row, col) belongs to the hint ring
func IsOuter(row, col int) bool {
	return row == 0 || row == Size-1 || col == 0 || col == Size-1
}

// IsHeight reports whether c is a height digit
func IsHeight(c byte) bool {
	return c >= MinHeight && c <= MaxHeight
}

// Row returns row i, hints included
func (b Board) Row(i int) string {
	return b.rows[i]
}

// Rows returns a copy of all rows, top to bottom
func (b Board) Rows() []string {
	rows := make([]string, Size)
	copy(rows, b.rows[:])
	return rows
}

// Interior returns the building cells of row i without its hints
func (b Board) Interior(i int) string {
	return b.rows[i][1 : Size-1]
}

// Columns returns the transposed board: column i, read top to bottom,
// becomes row i. Top hints become left hints and bottom hints right hints.
func (b Board) Columns() Board {
	var t Board
	for col := 0; col < Size; col++ {
		var sb strings.Builder
		sb.Grow(Size)
		for row := 0; row < Size; row++ {
			sb.WriteByte(b.rows[row][col])
		}
		t.rows[col] = sb.String()
	}
	return t
}

// String renders the board in its text file format, one row per line
func (b Board) String() string {
	return strings.Join(b.rows[:], "\n")
}

// Reverse returns line read from the other end
func Reverse(line string) string {
	out := make([]byte, len(line))
	for i := 0; i < len(line); i++ {
		out[len(line)-1-i] = line[i]
	}
	return string(out)
}
