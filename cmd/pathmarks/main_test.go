package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/pathmarks/internal/storage"
)

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range []string{
		"Assets/Scenes/Main.unity",
		"Assets/Scripts/Player.cs",
		"Packages/manifest.json",
	} {
		full := filepath.Join(root, filepath.FromSlash(p))
		assert.NilError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		assert.NilError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
	return root
}

func run(t *testing.T, project string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--project", project,
		"--config", filepath.Join(t.TempDir(), "config.json"),
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func bookmarksFile(t *testing.T, project string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(project, ".pathmarks", "bookmarks.txt"))
	assert.NilError(t, err)
	return string(data)
}

func TestAddAndList(t *testing.T) {
	project := newProject(t)

	out, err := run(t, project, "add", "Assets/Scenes", "./Assets/Scenes", filepath.Join(project, "Packages"))
	assert.NilError(t, err)
	assert.Equal(t, out, "Added 2 bookmarks (1 already bookmarked)\n")

	out, err = run(t, project, "ls")
	assert.NilError(t, err)
	assert.Equal(t, out, "  1  #ffffff  Assets/Scenes\n  2  #ffffff  Packages\n")
}

func TestList_Empty(t *testing.T) {
	out, err := run(t, newProject(t), "ls")
	assert.NilError(t, err)
	assert.Equal(t, out, "No bookmarks\n")
}

func TestAdd_OutsideProject(t *testing.T) {
	project := newProject(t)

	_, err := run(t, project, "add", "../elsewhere")
	assert.ErrorIs(t, err, errOutsideProject)

	_, err = run(t, project, "add", filepath.Dir(project))
	assert.ErrorIs(t, err, errOutsideProject)
}

func TestAdd_MarkerTextInPath(t *testing.T) {
	project := newProject(t)
	_, err := run(t, project, "add", "Assets/Scenes")
	assert.NilError(t, err)

	_, err = run(t, project, "add", "Assets/x @R:9G:9B:9")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
	assert.Equal(t, bookmarksFile(t, project), "Assets/Scenes\n")
}

func TestColor(t *testing.T) {
	project := newProject(t)
	_, err := run(t, project, "add", "Assets/Scenes", "Packages")
	assert.NilError(t, err)

	out, err := run(t, project, "color", "1", "#e06c75")
	assert.NilError(t, err)
	assert.Equal(t, out, "#e06c75 Assets/Scenes\n")
	assert.Assert(t, strings.Contains(bookmarksFile(t, project), "Assets/Scenes @R:224G:108B:117"))

	_, err = run(t, project, "color", "Assets/Scenes", "white")
	assert.NilError(t, err)
	assert.Assert(t, !strings.Contains(bookmarksFile(t, project), "@R:"))

	_, err = run(t, project, "color", "1", "not-a-color")
	assert.ErrorContains(t, err, "invalid color")
}

func TestRemove(t *testing.T) {
	project := newProject(t)
	_, err := run(t, project, "add", "Assets/Scenes", "Assets/Scripts", "Packages")
	assert.NilError(t, err)

	out, err := run(t, project, "rm", "2")
	assert.NilError(t, err)
	assert.Equal(t, out, "Removed Assets/Scripts\n")

	out, err = run(t, project, "rm", "Packages")
	assert.NilError(t, err)
	assert.Equal(t, out, "Removed Packages\n")

	out, err = run(t, project, "ls")
	assert.NilError(t, err)
	assert.Equal(t, out, "  1  #ffffff  Assets/Scenes\n")
}

func TestRemove_Unknown(t *testing.T) {
	project := newProject(t)
	_, err := run(t, project, "add", "Assets/Scenes")
	assert.NilError(t, err)

	_, err = run(t, project, "rm", "5")
	assert.ErrorIs(t, err, errNoBookmark)

	_, err = run(t, project, "rm", "Assets/Nope")
	assert.ErrorIs(t, err, errNoBookmark)
}

func TestCheck(t *testing.T) {
	project := newProject(t)
	_, err := run(t, project, "add", "Assets/Scenes", "Assets/Gone", "Packages", "Old.txt")
	assert.NilError(t, err)

	out, err := run(t, project, "check")
	assert.NilError(t, err)
	assert.Equal(t, out, "  2  Assets/Gone\n  4  Old.txt\n2 missing bookmarks (run with --prune to remove)\n")

	out, err = run(t, project, "check", "--prune")
	assert.NilError(t, err)
	assert.Assert(t, strings.HasSuffix(out, "Removed 2 missing bookmarks\n"), out)
	assert.Equal(t, bookmarksFile(t, project), "Assets/Scenes\nPackages\n")

	out, err = run(t, project, "check")
	assert.NilError(t, err)
	assert.Equal(t, out, "All bookmarks exist\n")
}

func TestExportImport(t *testing.T) {
	project := newProject(t)
	_, err := run(t, project, "add", "Assets/Scenes", "Packages")
	assert.NilError(t, err)
	_, err = run(t, project, "color", "1", "255,0,0")
	assert.NilError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.html")
	out, err := run(t, project, "export", exportPath)
	assert.NilError(t, err)
	assert.Equal(t, out, "Exported 2 bookmarks to "+exportPath+"\n")

	other := filepath.Join(t.TempDir(), "other.txt")
	out, err = run(t, project, "--file", other, "import", exportPath)
	assert.NilError(t, err)
	assert.Equal(t, out, "Imported 2 bookmarks\n")

	data, err := os.ReadFile(other)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "Assets/Scenes @R:255G:0B:0\nPackages\n")

	out, err = run(t, project, "--file", other, "import", exportPath)
	assert.NilError(t, err)
	assert.Equal(t, out, "Imported 0 bookmarks (2 duplicates skipped)\n")
}

func TestJump_SingleMatch(t *testing.T) {
	project := newProject(t)
	_, err := run(t, project, "add", "Assets/Scenes", "Packages")
	assert.NilError(t, err)

	out, err := run(t, project, "jump", "scenes")
	assert.NilError(t, err)
	assert.Equal(t, out, filepath.Join(project, "Assets", "Scenes")+"\n")
}

func TestJump_NoMatch(t *testing.T) {
	project := newProject(t)
	_, err := run(t, project, "add", "Packages")
	assert.NilError(t, err)

	out, err := run(t, project, "jump", "zzz")
	assert.NilError(t, err)
	assert.Equal(t, out, "No bookmarks found for 'zzz'\n")
}

func TestJump_MissingAsset(t *testing.T) {
	project := newProject(t)
	_, err := run(t, project, "add", "Assets/Gone")
	assert.NilError(t, err)

	_, err = run(t, project, "jump", "gone")
	assert.ErrorIs(t, err, errNotFound)
}

func TestCommands_MalformedFile(t *testing.T) {
	project := newProject(t)
	dir := filepath.Join(project, ".pathmarks")
	assert.NilError(t, os.MkdirAll(dir, 0o755))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "bookmarks.txt"), []byte("Assets @R:1G:2\n"), 0o644))

	_, err := run(t, project, "ls")
	assert.Assert(t, err != nil)

	_, err = run(t, project, "add", "Packages")
	assert.Assert(t, err != nil)

	// The file is left alone
	assert.Equal(t, bookmarksFile(t, project), "Assets @R:1G:2\n")
}

func TestProjectArg(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work", "game")

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{name: "relative", arg: "Assets/Scenes", want: "Assets/Scenes"},
		{name: "dot prefix", arg: "./Assets/Scenes/", want: "Assets/Scenes"},
		{name: "absolute inside", arg: filepath.Join(root, "Assets", "Art"), want: "Assets/Art"},
		{name: "absolute outside", arg: filepath.Join(root, "..", "other"), wantErr: true},
		{name: "root", arg: root, wantErr: true},
		{name: "parent", arg: "../x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := projectArg(root, tt.arg)
			if tt.wantErr {
				assert.ErrorIs(t, err, errOutsideProject)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("", false, true)
	assert.NilError(t, err)
	assert.Assert(t, !logger.Core().Enabled(zapcore.ErrorLevel))

	logFile := filepath.Join(t.TempDir(), "pathmarks.log")
	logger, err = newLogger(logFile, true, true)
	assert.NilError(t, err)
	assert.Assert(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger.Debug("hello")
	assert.NilError(t, logger.Sync())
	data, err := os.ReadFile(logFile)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(data), "hello"))
}
