package memrepo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mrled/skyval/internal/model"
)

// MemoryRepository is an in-memory implementation of VerdictRepository optionally backed by a JSON file
type MemoryRepository struct {
	mu       sync.RWMutex
	data     map[string]*model.VerdictRecord
	filePath string
}

// makeKey creates a composite key from boardID and source
// This matches the DynamoDB schema where PK=boardID and SK=source
func makeKey(boardID, source string) string {
	return boardID + "#" + source
}

// NewMemoryRepository creates a new in-memory repository without persistence.
// Data is stored only in memory and will be lost when the process terminates.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*model.VerdictRecord),
	}
}

// NewMemoryRepositoryWithPersistence creates a new in-memory repository backed by a JSON file.
// The repository will load existing data from the file on initialization and persist
// all changes to the file automatically.
func NewMemoryRepositoryWithPersistence(filePath string) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		data:     make(map[string]*model.VerdictRecord),
		filePath: filePath,
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	if err := repo.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return repo, nil
}

// NewMemoryRepositoryFromJsonString creates a new in-memory repository initialized with data from a JSON string.
// The repository will not be backed by a file and will not persist changes.
func NewMemoryRepositoryFromJsonString(jsonString string) (*MemoryRepository, error) {
	repo := NewMemoryRepository()
	if err := repo.loadFromReader(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return repo, nil
}

// loadFromReader reads JSON data from a reader and populates the in-memory data
func (r *MemoryRepository) loadFromReader(reader io.Reader) error {
	var dataSlice []*model.VerdictRecord
	if err := json.NewDecoder(reader).Decode(&dataSlice); err != nil {
		return err
	}

	r.data = make(map[string]*model.VerdictRecord)
	for _, d := range dataSlice {
		key := makeKey(d.BoardID, d.Source)
		if _, exists := r.data[key]; exists {
			slog.Warn("Duplicate verdict record in file, keeping last occurrence",
				slog.String("board_id", d.BoardID),
				slog.String("source", d.Source))
		}
		r.data[key] = d
	}

	return nil
}

// load reads the JSON file and populates the in-memory data
func (r *MemoryRepository) load() error {
	file, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() == 0 {
		return nil
	}

	return r.loadFromReader(file)
}

// save writes the in-memory data to the JSON file.
// If filePath is empty, this is a no-op
func (r *MemoryRepository) save() error {
	if r.filePath == "" {
		return nil
	}

	file, err := os.Create(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.sorted())
}

// sorted returns the records ordered by key so the JSON file is stable
func (r *MemoryRepository) sorted() []*model.VerdictRecord {
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]*model.VerdictRecord, 0, len(keys))
	for _, k := range keys {
		result = append(result, r.data[k])
	}
	return result
}

// Store saves a verdict record
func (r *MemoryRepository) Store(ctx context.Context, data *model.VerdictRecord) error {
	if data == nil {
		return errors.New("verdict record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := makeKey(data.BoardID, data.Source)
	if _, exists := r.data[key]; exists {
		return model.ErrAlreadyExists
	}

	if data.Rev == 0 {
		data.Rev = 1
	}
	r.data[key] = data
	return r.save()
}

// UnconditionalStore saves a verdict record, replacing any existing one.
// The stored revision is one more than the replaced record's.
func (r *MemoryRepository) UnconditionalStore(ctx context.Context, data *model.VerdictRecord) error {
	if data == nil {
		return errors.New("verdict record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := makeKey(data.BoardID, data.Source)
	data.Rev = 1
	if existing, exists := r.data[key]; exists {
		data.Rev = existing.Rev + 1
	}

	r.data[key] = data
	return r.save()
}

// Get retrieves a verdict record by board ID and source
func (r *MemoryRepository) Get(ctx context.Context, boardID, source string) (*model.VerdictRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.data[makeKey(boardID, source)]
	if !exists {
		return nil, model.ErrNotFound
	}

	return data, nil
}

// List retrieves all verdict records
func (r *MemoryRepository) List(ctx context.Context) ([]*model.VerdictRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(), nil
}

// Delete removes a verdict record by board ID and source
func (r *MemoryRepository) Delete(ctx context.Context, boardID, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := makeKey(boardID, source)
	if _, exists := r.data[key]; !exists {
		return model.ErrNotFound
	}

	delete(r.data, key)
	return r.save()
}
