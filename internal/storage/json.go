package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/tailscale/hujson"
)

// JSONStorage implements Storage using a JSON file.
// Paths are stored as plain JSON strings, so no path content is ambiguous.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the store from the JSON file. Comments and trailing commas are
// accepted. Returns an empty store if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, err
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC in %s: %w", s.path, err)
	}

	var store model.Store
	if err := json.Unmarshal(standardized, &store); err != nil {
		return nil, fmt.Errorf("invalid bookmarks in %s: %w", s.path, err)
	}

	if store.Bookmarks == nil {
		store.Bookmarks = []model.Bookmark{}
	}

	return &store, nil
}

// Save writes the store to the JSON file, backing up the previous version.
func (s *JSONStorage) Save(store *model.Store) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return writeWithBackup(s.path, bytes.NewReader(data))
}

// Close is a no-op for file storage.
func (s *JSONStorage) Close() error {
	return nil
}
