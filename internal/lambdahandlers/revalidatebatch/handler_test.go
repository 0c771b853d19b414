package revalidatebatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mrled/skyval/internal/model"
	"github.com/mrled/skyval/internal/repository/memrepo"
	"github.com/mrled/skyval/internal/service/boardid"
	"github.com/mrled/skyval/internal/service/validation"
)

func TestHandle(t *testing.T) {
	repo := memrepo.NewMemoryRepository()
	ctx := context.Background()

	hintless := &model.VerdictRecord{
		Source:       "hintless.txt",
		Rows:         []string{"*******", "*12345*", "*12345*", "*12345*", "*12345*", "*12345*", "*******"},
		Valid:        true,
		ValidateTime: time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC),
	}
	b, err := hintless.Board()
	if err != nil {
		t.Fatalf("Failed to parse rows: %v", err)
	}
	hintless.BoardID = boardid.Calculate(b)
	broken := &model.VerdictRecord{BoardID: "v1:broken", Source: "broken.txt", Rows: []string{"*******"}, FailedRule: "finished"}

	for _, record := range []*model.VerdictRecord{hintless, broken} {
		if err := repo.Store(ctx, record); err != nil {
			t.Fatalf("Failed to store record: %v", err)
		}
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(repo, validation.NewService(validation.WithColumnUniqueness(true)), log)

	if err := h.Handle(ctx, map[string]interface{}{"source": "aws.events"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	updated, err := repo.Get(ctx, hintless.BoardID, "hintless.txt")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if updated.Valid || updated.FailedRule != string(validation.RuleColumnUniqueness) {
		t.Errorf("Expected column-uniqueness failure, got valid=%v rule=%q", updated.Valid, updated.FailedRule)
	}
	if _, err := repo.Get(ctx, "v1:broken", "broken.txt"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected broken record to be dropped, got %v", err)
	}
}
