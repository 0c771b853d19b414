package memrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrled/skyval/internal/model"
)

var solvedRows = []string{"***21**", "412453*", "423145*", "*543215", "*35214*", "*41532*", "*2*1***"}

func TestMemoryRepository_JSONPersistence(t *testing.T) {
	tmpPath := filepath.Join(t.TempDir(), "verdicts.json")
	ctx := context.Background()

	repo1, err := NewMemoryRepositoryWithPersistence(tmpPath)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	testData := &model.VerdictRecord{
		BoardID:      "v1:abc",
		Source:       "board.txt",
		Rows:         solvedRows,
		Valid:        true,
		ValidateTime: time.Now(),
	}

	if err := repo1.Store(ctx, testData); err != nil {
		t.Fatalf("Failed to store data: %v", err)
	}

	repo2, err := NewMemoryRepositoryWithPersistence(tmpPath)
	if err != nil {
		t.Fatalf("Failed to create second repository: %v", err)
	}

	retrieved, err := repo2.Get(ctx, "v1:abc", "board.txt")
	if err != nil {
		t.Fatalf("Failed to get data: %v", err)
	}

	if retrieved.Source != testData.Source {
		t.Errorf("Expected source %s, got %s", testData.Source, retrieved.Source)
	}
	if !retrieved.Valid {
		t.Errorf("Expected valid=true after reload")
	}
	if len(retrieved.Rows) != len(solvedRows) || retrieved.Rows[3] != solvedRows[3] {
		t.Errorf("Expected rows to survive reload, got %v", retrieved.Rows)
	}
	if retrieved.Rev != 1 {
		t.Errorf("Expected rev 1, got %d", retrieved.Rev)
	}
}

func TestMemoryRepository_StoreDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	record := &model.VerdictRecord{BoardID: "v1:abc", Source: "board.txt"}
	if err := repo.Store(ctx, record); err != nil {
		t.Fatalf("Failed to store data: %v", err)
	}

	err := repo.Store(ctx, &model.VerdictRecord{BoardID: "v1:abc", Source: "board.txt"})
	if !errors.Is(err, model.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	// Same board from another source is a separate record
	if err := repo.Store(ctx, &model.VerdictRecord{BoardID: "v1:abc", Source: "copy.txt"}); err != nil {
		t.Errorf("Expected no error for a second source, got %v", err)
	}
}

func TestMemoryRepository_UnconditionalStoreBumpsRev(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for i := 1; i <= 3; i++ {
		record := &model.VerdictRecord{BoardID: "v1:abc", Source: "board.txt", Valid: i%2 == 0}
		if err := repo.UnconditionalStore(ctx, record); err != nil {
			t.Fatalf("Failed to store data: %v", err)
		}
		if record.Rev != int64(i) {
			t.Errorf("Expected rev %d, got %d", i, record.Rev)
		}
	}

	all, _ := repo.List(ctx)
	if len(all) != 1 {
		t.Errorf("Expected 1 record, got %d", len(all))
	}
}

func TestMemoryRepository_DeletePersistence(t *testing.T) {
	tmpPath := filepath.Join(t.TempDir(), "nested", "verdicts.json")
	ctx := context.Background()

	repo, err := NewMemoryRepositoryWithPersistence(tmpPath)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	if err := repo.Store(ctx, &model.VerdictRecord{BoardID: "v1:def", Source: "board.txt"}); err != nil {
		t.Fatalf("Failed to store data: %v", err)
	}

	if err := repo.Delete(ctx, "v1:def", "board.txt"); err != nil {
		t.Fatalf("Failed to delete data: %v", err)
	}

	repo2, err := NewMemoryRepositoryWithPersistence(tmpPath)
	if err != nil {
		t.Fatalf("Failed to create second repository: %v", err)
	}

	_, err = repo2.Get(ctx, "v1:def", "board.txt")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := repo2.Delete(ctx, "v1:def", "board.txt"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting a missing record, got %v", err)
	}
}

func TestMemoryRepository_EmptyFile(t *testing.T) {
	tmpFile, err := os.CreateTemp(t.TempDir(), "verdicts-*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpFile.Close()

	repo, err := NewMemoryRepositoryWithPersistence(tmpFile.Name())
	if err != nil {
		t.Fatalf("Expected empty file to load, got: %v", err)
	}
	all, _ := repo.List(context.Background())
	if len(all) != 0 {
		t.Errorf("Expected no records, got %d", len(all))
	}
}

func TestNewMemoryRepositoryFromJsonString(t *testing.T) {
	repo, err := NewMemoryRepositoryFromJsonString(`[
		{"BoardID": "v1:a", "Source": "one.txt", "Valid": true, "Rev": 2},
		{"BoardID": "v1:b", "Source": "two.txt", "Valid": false, "FailedRule": "finished", "Rev": 1}
	]`)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	record, err := repo.Get(context.Background(), "v1:b", "two.txt")
	if err != nil {
		t.Fatalf("Failed to get data: %v", err)
	}
	if record.FailedRule != "finished" {
		t.Errorf("Expected failed rule finished, got %s", record.FailedRule)
	}

	if _, err := NewMemoryRepositoryFromJsonString("not json"); err == nil {
		t.Errorf("Expected error for invalid JSON")
	}
}
