// Package session owns the bookmark list for one panel session: it bootstraps
// the storage location, loads the list, applies user edits and tracks whether
// the list needs saving.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/nikbrunner/pathmarks/internal/storage"
)

var (
	// ErrStorageUnavailable means the bookmarks location is empty or has no parent directory.
	ErrStorageUnavailable = errors.New("bookmarks storage unavailable")
	// ErrBootstrap means the storage directory is missing and could not be created.
	ErrBootstrap = errors.New("cannot create bookmarks directory")
	// ErrNotLoaded is returned by mutations when the session holds no list.
	ErrNotLoaded = errors.New("bookmarks not loaded")
)

// State is the lifecycle state of a Session.
type State int

const (
	Uninitialized State = iota
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// OpenFunc opens a storage backend for a location.
type OpenFunc func(path string) (storage.Storage, error)

// Params holds parameters for opening a Session.
type Params struct {
	Location string      // bookmarks file path
	Open     OpenFunc    // optional, defaults to storage.Open
	Logger   *zap.Logger // optional, defaults to a no-op logger
}

// Session is the stateful bookmark store.
// It is not safe for concurrent use; all calls happen on the UI thread.
type Session struct {
	location string
	storage  storage.Storage
	store    *model.Store
	state    State
	err      error
	dirty    bool
	log      *zap.Logger
	onChange []func()
}

// Open bootstraps the storage location and loads the bookmark list.
//
// The returned Session is never nil. On failure it is left Uninitialized
// (location or directory problems) or Failed (load or parse problems), and
// the same error is available from Err.
func Open(params Params) (*Session, error) {
	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}
	open := params.Open
	if open == nil {
		open = storage.Open
	}

	s := &Session{
		location: storage.CleanLocation(params.Location),
		state:    Uninitialized,
		log:      log,
	}

	if s.location == "" {
		return s, s.fail(Uninitialized, ErrStorageUnavailable)
	}
	dir := filepath.Dir(s.location)
	if dir == "" || dir == s.location {
		return s, s.fail(Uninitialized, fmt.Errorf("%w: no parent directory for %s", ErrStorageUnavailable, s.location))
	}

	if err := ensureDir(dir); err != nil {
		return s, s.fail(Uninitialized, fmt.Errorf("%w: %s: %w", ErrBootstrap, dir, err))
	}

	st, err := open(s.location)
	if err != nil {
		return s, s.fail(Failed, err)
	}
	s.storage = st

	store, err := st.Load()
	if err != nil {
		return s, s.fail(Failed, err)
	}

	s.store = store
	s.state = Loaded
	if removed := s.store.ReconcileEmpty(); removed > 0 {
		s.dirty = true
		log.Info("dropped empty bookmarks", zap.Int("count", removed))
	}

	log.Info("bookmarks loaded",
		zap.String("path", s.location),
		zap.Int("count", s.store.Len()))

	return s, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Session) fail(state State, err error) error {
	s.state = state
	s.err = err
	s.log.Warn("bookmarks unavailable",
		zap.String("path", s.location),
		zap.Stringer("state", state),
		zap.Error(err))
	return err
}

// State returns the session state.
func (s *Session) State() State {
	return s.state
}

// Err returns the error that kept the session from loading, if any.
func (s *Session) Err() error {
	return s.err
}

// Location returns the cleaned bookmarks file path.
func (s *Session) Location() string {
	return s.location
}

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool {
	return s.dirty
}

// OnChange registers fn to be called after every mutation that changed the list.
func (s *Session) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// Bookmarks returns a copy of the current list. Nil when not loaded.
func (s *Session) Bookmarks() []model.Bookmark {
	if s.state != Loaded {
		return nil
	}
	return s.store.Clone().Bookmarks
}

// Len returns the number of bookmarks.
func (s *Session) Len() int {
	if s.state != Loaded {
		return 0
	}
	return s.store.Len()
}

// Has reports whether path is bookmarked.
func (s *Session) Has(path string) bool {
	return s.state == Loaded && s.store.Has(path)
}

// IndexOf returns the index of path, or -1.
func (s *Session) IndexOf(path string) int {
	if s.state != Loaded {
		return -1
	}
	return s.store.IndexOf(path)
}

// Add appends path unless it is already bookmarked. Paths the storage
// backend cannot hold are rejected with storage.ErrInvalidPath.
func (s *Session) Add(path string) (bool, error) {
	if s.state != Loaded {
		return false, ErrNotLoaded
	}
	if v, ok := s.storage.(storage.PathValidator); ok {
		if err := v.ValidatePath(path); err != nil {
			return false, err
		}
	}
	if !s.store.AddIfAbsent(path) {
		return false, nil
	}
	s.log.Debug("bookmark added", zap.String("path", path))
	s.changed()
	return true, nil
}

// Remove deletes the bookmark at index. Later indices shift down.
func (s *Session) Remove(index int) error {
	if s.state != Loaded {
		return ErrNotLoaded
	}
	if err := s.store.RemoveAt(index); err != nil {
		return err
	}
	s.log.Debug("bookmark removed", zap.Int("index", index))
	s.changed()
	return nil
}

// Recolor sets the color of the bookmark at index.
func (s *Session) Recolor(index int, c model.Color) error {
	if s.state != Loaded {
		return ErrNotLoaded
	}
	changed, err := s.store.SetColor(index, c)
	if err != nil {
		return err
	}
	if changed {
		s.log.Debug("bookmark recolored", zap.Int("index", index), zap.Stringer("color", c))
		s.changed()
	}
	return nil
}

// Reconcile drops bookmarks with empty paths.
func (s *Session) Reconcile() int {
	if s.state != Loaded {
		return 0
	}
	removed := s.store.ReconcileEmpty()
	if removed > 0 {
		s.changed()
	}
	return removed
}

func (s *Session) changed() {
	s.dirty = true
	for _, fn := range s.onChange {
		fn()
	}
}

// Flush saves the list if it is dirty. The dirty flag is only cleared on a
// successful save, so a failed save is retried by the next Flush.
func (s *Session) Flush() error {
	if s.state != Loaded || !s.dirty {
		return nil
	}
	if err := s.storage.Save(s.store); err != nil {
		s.log.Error("saving bookmarks failed", zap.String("path", s.location), zap.Error(err))
		return fmt.Errorf("save bookmarks: %w", err)
	}
	s.dirty = false
	s.log.Debug("bookmarks saved", zap.String("path", s.location), zap.Int("count", s.store.Len()))
	return nil
}

// Reload re-reads the list from storage, picking up external edits, and
// reports whether the list changed. It does nothing while there are unsaved
// changes. A file that no longer parses leaves the in-memory list untouched
// and returns the error.
func (s *Session) Reload() (bool, error) {
	if s.state != Loaded || s.dirty {
		return false, nil
	}
	store, err := s.storage.Load()
	if err != nil {
		s.log.Warn("reload failed", zap.String("path", s.location), zap.Error(err))
		return false, err
	}
	// Our own saves come back through the watcher unchanged.
	if slices.Equal(store.Bookmarks, s.store.Bookmarks) {
		return false, nil
	}
	s.store = store
	if removed := s.store.ReconcileEmpty(); removed > 0 {
		s.dirty = true
	}
	s.log.Debug("bookmarks reloaded", zap.Int("count", s.store.Len()))
	return true, nil
}

// Close releases the storage backend.
func (s *Session) Close() error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Close()
}
