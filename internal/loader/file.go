package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/mrled/skyval/internal/board"
)

// FileLoader loads boards from the local filesystem
type FileLoader struct{}

// NewFileLoader creates a new file loader
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads the board stored at the path ref
func (l *FileLoader) Load(ctx context.Context, ref string) (board.Board, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		return board.Board{}, fmt.Errorf("failed to read board file: %w", err)
	}

	b, err := Decode(ref, data)
	if err != nil {
		return board.Board{}, fmt.Errorf("%s: %w", ref, err)
	}
	return b, nil
}
