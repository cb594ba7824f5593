package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func startWatcher(t *testing.T, path string) (*Watcher, context.CancelFunc) {
	t.Helper()
	w, err := New(path, 20*time.Millisecond, nil)
	assert.NilError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	t.Cleanup(func() {
		cancel()
		w.Close()
	})
	return w, cancel
}

func waitEvent(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case _, ok := <-w.Events():
		assert.Assert(t, ok, "events channel closed early")
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.txt")
	assert.NilError(t, os.WriteFile(path, []byte("Assets/A\n"), 0o644))

	w, _ := startWatcher(t, path)
	assert.Equal(t, w.Path(), path)

	assert.NilError(t, os.WriteFile(path, []byte("Assets/A\nAssets/B\n"), 0o644))
	waitEvent(t, w)
}

func TestWatcher_ReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.txt")
	assert.NilError(t, os.WriteFile(path, []byte("Assets/A\n"), 0o644))

	w, _ := startWatcher(t, path)

	tmp := filepath.Join(dir, "bookmarks.tmp")
	assert.NilError(t, os.WriteFile(tmp, []byte("Assets/C\n"), 0o644))
	assert.NilError(t, os.Rename(tmp, path))
	waitEvent(t, w)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.txt")

	w, _ := startWatcher(t, path)

	assert.NilError(t, os.WriteFile(filepath.Join(dir, "bookmarks.bak"), []byte("x"), 0o644))

	select {
	case <-w.Events():
		t.Fatal("unexpected event for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CancelClosesEvents(t *testing.T) {
	dir := t.TempDir()
	w, cancel := startWatcher(t, filepath.Join(dir, "bookmarks.txt"))

	cancel()
	select {
	case _, ok := <-w.Events():
		assert.Assert(t, !ok)
	case <-time.After(3 * time.Second):
		t.Fatal("events channel not closed after cancel")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "bookmarks.txt"), 0, nil)
	assert.Assert(t, err != nil)
}
