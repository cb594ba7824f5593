package storage

import (
	"errors"
	"os"
	"strings"

	"github.com/nikbrunner/pathmarks/internal/model"
)

// TextStorage implements Storage using the line-based bookmarks.txt format.
type TextStorage struct {
	path string
}

// NewTextStorage creates a new TextStorage with the given file path.
func NewTextStorage(path string) *TextStorage {
	return &TextStorage{path: path}
}

// Path returns the storage file path.
func (s *TextStorage) Path() string {
	return s.path
}

// Load reads the store from the text file.
// Returns an empty store if the file doesn't exist.
func (s *TextStorage) Load() (*model.Store, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, err
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, err
	}
	return Decode(lines)
}

// ValidatePath implements PathValidator.
func (s *TextStorage) ValidatePath(path string) error {
	return ValidatePath(path)
}

// Save writes one line per bookmark, each newline-terminated.
// The previous file is copied to the .bak sibling first. A path that would
// not read back unchanged fails the save before anything is written.
func (s *TextStorage) Save(store *model.Store) error {
	for _, bm := range store.Bookmarks {
		if err := ValidatePath(bm.Path); err != nil {
			return err
		}
	}

	var b strings.Builder
	for _, line := range Encode(store) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return writeWithBackup(s.path, strings.NewReader(b.String()))
}

// Close is a no-op for file storage.
func (s *TextStorage) Close() error {
	return nil
}
