// Package loader turns board sources into boards. A source is a local file
// path or, through an adapter, an object in remote storage.
package loader

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/mrled/skyval/internal/board"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedSource is returned for references no loader can handle
var ErrUnsupportedSource = errors.New("unsupported board source")

// Loader loads a board from a source reference
type Loader interface {
	Load(ctx context.Context, ref string) (board.Board, error)
}

// ReadBoard reads a board in the text format: one row per line.
// Trailing blank lines are ignored.
func ReadBoard(r io.Reader) (board.Board, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return board.Board{}, fmt.Errorf("failed to read board: %w", err)
	}

	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}

	return board.Parse(rows)
}

// yamlDocument is the YAML form of a board file
type yamlDocument struct {
	Rows []string `yaml:"rows"`
}

// ReadYAMLBoard reads a board from a YAML document with a rows list
func ReadYAMLBoard(r io.Reader) (board.Board, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return board.Board{}, fmt.Errorf("failed to decode YAML board: %w", err)
	}
	return board.Parse(doc.Rows)
}

// IsYAML reports whether name has a YAML file extension
func IsYAML(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Decode parses board data, choosing the format from the name's extension
func Decode(name string, data []byte) (board.Board, error) {
	if IsYAML(name) {
		return ReadYAMLBoard(bytes.NewReader(data))
	}
	return ReadBoard(bytes.NewReader(data))
}
