package presenter

import (
	"strings"

	"github.com/mrled/skyval/internal/board"
	"github.com/mrled/skyval/internal/model"
)

const frame = "  +-----------+"

// RenderBoard draws a board as a spaced grid, with the interior framed and
// the hints outside the frame. Filler cells are drawn blank.
func RenderBoard(b board.Board) string {
	var sb strings.Builder
	for i := 0; i < board.Size; i++ {
		row := b.Row(i)
		switch i {
		case 0:
			sb.WriteString(hintLine(row))
			sb.WriteString("\n" + frame + "\n")
		case board.Size - 1:
			sb.WriteString(frame + "\n")
			sb.WriteString(hintLine(row))
			sb.WriteString("\n")
		default:
			line := string(cell(row[0])) + " | " + spaced(row[1:board.Size-1]) + " | " + string(cell(row[board.Size-1]))
			sb.WriteString(strings.TrimRight(line, " "))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FormatVerdict formats a verdict record as a single line, e.g. "board.txt: invalid (finished)"
func FormatVerdict(record *model.VerdictRecord) string {
	if record.Valid {
		return record.Source + ": valid"
	}
	return record.Source + ": invalid (" + record.FailedRule + ")"
}

func hintLine(row string) string {
	return strings.TrimRight("    "+spaced(row[1:board.Size-1]), " ")
}

func spaced(cells string) string {
	out := make([]byte, 0, 2*len(cells))
	for i := 0; i < len(cells); i++ {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, cell(cells[i]))
	}
	return string(out)
}

func cell(c byte) byte {
	if c == board.Filler {
		return ' '
	}
	return c
}
