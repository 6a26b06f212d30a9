package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oskarlind/dayqueue/internal/models"
)

// JSONStore is a local file-backed store: the whole collection lives in a
// single JSON file, rewritten atomically on every Save.
type JSONStore struct {
	path string
}

// NewJSONStore returns a Provider backed by the file at path, creating its
// parent directory if necessary.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &JSONStore{path: path}, nil
}

// Load reads every record from disk. A missing file is treated as an
// empty collection (first run), not an error.
func (s *JSONStore) Load() ([]*models.Task, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	tasks := make([]*models.Task, len(records))
	for i, r := range records {
		tasks[i] = fromRecord(r)
	}
	return tasks, nil
}

// Save rewrites the entire file: clear then bulk-put every task. The write
// goes to a temp file first and is renamed into place, so a
// crash mid-write never corrupts the previous, still-valid file.
func (s *JSONStore) Save(tasks []*models.Task) error {
	records := make([]record, len(tasks))
	for i, t := range tasks {
		records[i] = toRecord(t)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp, s.path, err)
	}
	return nil
}

// Close is a no-op; JSONStore holds no open resources between calls.
func (s *JSONStore) Close() error { return nil }
