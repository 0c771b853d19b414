package presenter

import (
	"testing"

	"github.com/mrled/skyval/internal/board"
	"github.com/mrled/skyval/internal/model"
)

func TestRenderBoard(t *testing.T) {
	b := board.MustParse(
		"***21**",
		"412453*",
		"423145*",
		"*543215",
		"*35214*",
		"*4?532*",
		"*2*1***",
	)

	expected := "        2 1\n" +
		"  +-----------+\n" +
		"4 | 1 2 4 5 3 |\n" +
		"4 | 2 3 1 4 5 |\n" +
		"  | 5 4 3 2 1 | 5\n" +
		"  | 3 5 2 1 4 |\n" +
		"  | 4 ? 5 3 2 |\n" +
		"  +-----------+\n" +
		"    2   1\n"

	if got := RenderBoard(b); got != expected {
		t.Errorf("RenderBoard mismatch\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestFormatVerdict(t *testing.T) {
	tests := []struct {
		record   *model.VerdictRecord
		expected string
	}{
		{&model.VerdictRecord{Source: "solved.txt", Valid: true}, "solved.txt: valid"},
		{&model.VerdictRecord{Source: "s3://boards/x.txt", FailedRule: "row-uniqueness"}, "s3://boards/x.txt: invalid (row-uniqueness)"},
	}

	for _, tt := range tests {
		if got := FormatVerdict(tt.record); got != tt.expected {
			t.Errorf("FormatVerdict() = %q, expected %q", got, tt.expected)
		}
	}
}
