package board

import (
	"errors"
	"testing"
)

var solvedRows = []string{
	"***21**",
	"412453*",
	"423145*",
	"*543215",
	"*35214*",
	"*41532*",
	"*2*1***",
}

func TestParse_Success(t *testing.T) {
	b, err := Parse(solvedRows)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	for i, row := range solvedRows {
		if b.Row(i) != row {
			t.Errorf("Row %d: expected %q, got %q", i, row, b.Row(i))
		}
	}
}

func TestParse_TrimsLineTerminators(t *testing.T) {
	rows := []string{
		"***21**\n",
		"412453*\r\n",
		"423145*\n",
		"*543215\n",
		"*35214*\n",
		"*41532*\n",
		"*2*1***",
	}
	b, err := Parse(rows)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if b.Row(1) != "412453*" {
		t.Errorf("Expected trimmed row %q, got %q", "412453*", b.Row(1))
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"too few rows", solvedRows[:6]},
		{"too many rows", append(append([]string{}, solvedRows...), "*******")},
		{"short row", []string{"***21*", "412453*", "423145*", "*543215", "*35214*", "*41532*", "*2*1***"}},
		{"long row", []string{"***21***", "412453*", "423145*", "*543215", "*35214*", "*41532*", "*2*1***"}},
		{"unknown character", []string{"***21**", "41x453*", "423145*", "*543215", "*35214*", "*41532*", "*2*1***"}},
		{"height out of range", []string{"***21**", "416453*", "423145*", "*543215", "*35214*", "*41532*", "*2*1***"}},
		{"filler in interior", []string{"***21**", "41*453*", "423145*", "*543215", "*35214*", "*41532*", "*2*1***"}},
		{"unresolved in hint ring", []string{"***21**", "?12453*", "423145*", "*543215", "*35214*", "*41532*", "*2*1***"}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.rows)
			if err == nil {
				t.Fatalf("Expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedBoard) {
				t.Errorf("Expected ErrMalformedBoard, got: %v", err)
			}
		})
	}
}

func TestParse_AllowsUnresolvedInterior(t *testing.T) {
	_, err := Parse([]string{"***21**", "4?????*", "4?????*", "*?????5", "*?????*", "*?????*", "*2*1***"})
	if err != nil {
		t.Errorf("Expected unresolved interior cells to parse, got: %v", err)
	}
}

func TestColumns(t *testing.T) {
	b := MustParse(solvedRows...)
	cols := b.Columns()

	expected := []string{
		"*44****",
		"*125342",
		"*23451*",
		"2413251",
		"154213*",
		"*35142*",
		"***5***",
	}
	for i, want := range expected {
		if cols.Row(i) != want {
			t.Errorf("Column %d: expected %q, got %q", i, want, cols.Row(i))
		}
	}

	// Transposing twice gives the original board back
	if cols.Columns() != b {
		t.Errorf("Expected double transpose to be identity")
	}
}

func TestInterior(t *testing.T) {
	b := MustParse(solvedRows...)
	if got := b.Interior(1); got != "12453" {
		t.Errorf("Expected %q, got %q", "12453", got)
	}
	if got := b.Interior(3); got != "54321" {
		t.Errorf("Expected %q, got %q", "54321", got)
	}
}

func TestRowsReturnsCopy(t *testing.T) {
	b := MustParse(solvedRows...)
	rows := b.Rows()
	rows[1] = "*******"
	if b.Row(1) != "412453*" {
		t.Errorf("Board was mutated through Rows(): %q", b.Row(1))
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"412453*", "*354214"},
		{"*543215", "512345*"},
		{"", ""},
		{"a", "a"},
	}
	for _, tt := range tests {
		if got := Reverse(tt.input); got != tt.expected {
			t.Errorf("Reverse(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsOuter(t *testing.T) {
	tests := []struct {
		row, col int
		expected bool
	}{
		{0, 3, true},
		{6, 0, true},
		{3, 0, true},
		{3, 6, true},
		{1, 1, false},
		{5, 5, false},
		{3, 3, false},
	}
	for _, tt := range tests {
		if got := IsOuter(tt.row, tt.col); got != tt.expected {
			t.Errorf("IsOuter(%d, %d) = %v, expected %v", tt.row, tt.col, got, tt.expected)
		}
	}
}
