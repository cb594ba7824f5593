package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/pathmarks/internal/model"
)

var (
	// ErrUnsupportedFormat is returned by Open for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported bookmarks file format")
	// ErrInvalidPath is returned for paths a backend cannot store faithfully.
	ErrInvalidPath = errors.New("path cannot be stored")
)

// Storage defines the interface for persisting bookmarks.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
	Path() string
	Close() error
}

// PathValidator is implemented by backends that cannot store every path.
type PathValidator interface {
	ValidatePath(path string) error
}

// Open opens the storage backend matching the file extension:
// .txt (line format), .json, or .db/.sqlite.
func Open(path string) (Storage, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return NewTextStorage(path), nil
	case ".json":
		return NewJSONStorage(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStorage(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DefaultFileName is the bookmarks file name inside the storage directory.
const DefaultFileName = "bookmarks.txt"

// DefaultLocation returns the default bookmarks file for a project:
// <projectRoot>/.pathmarks/bookmarks.txt
func DefaultLocation(projectRoot string) string {
	return filepath.Join(projectRoot, ".pathmarks", DefaultFileName)
}

// CleanLocation normalizes both slash styles to the OS separator and strips
// characters that can never appear in a path. Returns "" if nothing usable
// remains.
func CleanLocation(path string) string {
	sep := string(os.PathSeparator)
	path = strings.ReplaceAll(path, `\`, sep)
	path = strings.ReplaceAll(path, "/", sep)
	path = strings.Map(func(r rune) rune {
		if r == 0 || (r < 0x20 && r != '\t') {
			return -1
		}
		return r
	}, path)
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}
