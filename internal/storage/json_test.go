package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/nikbrunner/pathmarks/internal/storage"
	"gotest.tools/v3/assert"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := storage.NewJSONStorage(path)

	assert.NilError(t, s.Save(sampleStore()))

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, sampleStore())
}

func TestJSONStorage_AmbiguousPathsSurvive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := storage.NewJSONStorage(path)
	store := &model.Store{Bookmarks: []model.Bookmark{
		{Path: "Assets/odd @R:1G:2B:3", Color: model.White},
	}}

	assert.NilError(t, s.Save(store))
	loaded, err := s.Load()
	assert.NilError(t, err)

	assert.DeepEqual(t, loaded, store)
}

func TestJSONStorage_LoadWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	content := `{
  // edited by hand
  "bookmarks": [
    {"path": "Assets/A", "color": "#ffffff"},
    {"path": "Assets/B", "color": "#0a141e"}, // trailing comma is fine
  ],
}`
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))

	store, err := storage.NewJSONStorage(path).Load()
	assert.NilError(t, err)

	assert.DeepEqual(t, store.Bookmarks, []model.Bookmark{
		{Path: "Assets/A", Color: model.White},
		{Path: "Assets/B", Color: model.RGB(10, 20, 30)},
	})
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	store, err := storage.NewJSONStorage(filepath.Join(t.TempDir(), "none.json")).Load()
	assert.NilError(t, err)
	assert.Equal(t, store.Len(), 0)
}

func TestJSONStorage_NullBookmarks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{"bookmarks": null}`), 0o644))

	store, err := storage.NewJSONStorage(path).Load()
	assert.NilError(t, err)
	assert.Assert(t, store.Bookmarks != nil)
}

func TestJSONStorage_InvalidColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{"bookmarks": [{"path": "A", "color": "#12"}]}`), 0o644))

	_, err := storage.NewJSONStorage(path).Load()
	assert.ErrorIs(t, err, model.ErrInvalidColor)
}

func TestJSONStorage_Backup(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewJSONStorage(filepath.Join(dir, "bookmarks.json"))

	assert.NilError(t, s.Save(sampleStore()))
	assert.NilError(t, s.Save(model.NewStore()))

	backup, err := storage.NewJSONStorage(filepath.Join(dir, "bookmarks.bak")).Load()
	assert.NilError(t, err)
	assert.DeepEqual(t, backup, sampleStore())
}
