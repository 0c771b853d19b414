package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrled/skyval/internal/board"
)

// Multi routes references to a loader by URL scheme.
// References without a scheme go to the local loader.
type Multi struct {
	local   Loader
	schemes map[string]Loader
}

// NewMulti creates a router that sends scheme-less references to local
func NewMulti(local Loader) *Multi {
	return &Multi{
		local:   local,
		schemes: make(map[string]Loader),
	}
}

// Register makes l handle references starting with scheme://
func (m *Multi) Register(scheme string, l Loader) {
	m.schemes[strings.ToLower(scheme)] = l
}

// Load dispatches ref to the loader registered for its scheme
func (m *Multi) Load(ctx context.Context, ref string) (board.Board, error) {
	scheme, _, ok := strings.Cut(ref, "://")
	if !ok {
		if m.local == nil {
			return board.Board{}, fmt.Errorf("%w: %s", ErrUnsupportedSource, ref)
		}
		return m.local.Load(ctx, ref)
	}

	l, found := m.schemes[strings.ToLower(scheme)]
	if !found {
		return board.Board{}, fmt.Errorf("%w: no loader for scheme %q", ErrUnsupportedSource, scheme)
	}
	return l.Load(ctx, ref)
}
