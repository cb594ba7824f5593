package model

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a bookmark index is not valid.
var ErrIndexOutOfRange = errors.New("bookmark index out of range")

// Store holds the ordered bookmark list.
// Slice order is insertion order, display order and persisted order.
type Store struct {
	Bookmarks []Bookmark `json:"bookmarks"`
}

// NewStore creates an empty Store with an initialized slice.
func NewStore() *Store {
	return &Store{
		Bookmarks: []Bookmark{},
	}
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.Bookmarks)
}

// Paths returns the bookmark paths in order.
func (s *Store) Paths() []string {
	paths := make([]string, len(s.Bookmarks))
	for i, b := range s.Bookmarks {
		paths[i] = b.Path
	}
	return paths
}

// IndexOf returns the index of the first bookmark with exactly this path, or -1.
func (s *Store) IndexOf(path string) int {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].Path == path {
			return i
		}
	}
	return -1
}

// Has reports whether a bookmark with exactly this path exists.
// Paths are compared literally; no case or separator normalization.
func (s *Store) Has(path string) bool {
	return s.IndexOf(path) >= 0
}

// AddIfAbsent appends an untagged bookmark unless the path is already present.
// Returns true if a bookmark was added.
func (s *Store) AddIfAbsent(path string) bool {
	if s.Has(path) {
		return false
	}
	s.Bookmarks = append(s.Bookmarks, NewBookmark(path))
	return true
}

// RemoveAt removes the bookmark at index. Later bookmarks shift down by one.
func (s *Store) RemoveAt(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.Bookmarks = append(s.Bookmarks[:index], s.Bookmarks[index+1:]...)
	return nil
}

// SetColor recolors the bookmark at index.
// Returns true if the color actually changed.
func (s *Store) SetColor(index int, c Color) (bool, error) {
	if err := s.checkIndex(index); err != nil {
		return false, err
	}
	if s.Bookmarks[index].Color == c {
		return false, nil
	}
	s.Bookmarks[index].Color = c
	return true, nil
}

// ReconcileEmpty drops bookmarks with an empty path, keeping the order of the rest.
// Returns the number of bookmarks removed.
func (s *Store) ReconcileEmpty() int {
	kept := s.Bookmarks[:0]
	for _, b := range s.Bookmarks {
		if b.Path != "" {
			kept = append(kept, b)
		}
	}
	removed := len(s.Bookmarks) - len(kept)
	clear(s.Bookmarks[len(kept):])
	s.Bookmarks = kept
	return removed
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	out := &Store{Bookmarks: make([]Bookmark, len(s.Bookmarks))}
	copy(out.Bookmarks, s.Bookmarks)
	return out
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.Bookmarks) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.Bookmarks))
	}
	return nil
}
