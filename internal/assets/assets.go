// Package assets is the project-side collaborator of the bookmark store: it
// answers "what lives under this path" and "which asset does this bookmark
// point at".
package assets

import (
	"errors"
	"io/fs"
	"path"
	"strings"
)

// Handle identifies one asset (file or directory) in the project.
type Handle struct {
	Path  string // project-relative, slash-separated
	IsDir bool
}

// Name returns the last path element.
func (h Handle) Name() string {
	return path.Base(h.Path)
}

// Dir returns the directory containing the asset, slash-separated.
func Dir(h Handle) string {
	return path.Dir(h.Path)
}

// Index resolves project paths to assets.
type Index interface {
	// Find lists every asset below dir, depth-first in lexical order.
	Find(dir string) ([]Handle, error)
	// Lookup returns the asset at exactly p.
	Lookup(p string) (Handle, bool)
}

// Selector receives the asset a bookmark jump landed on.
type Selector interface {
	Select(h Handle)
	Ping(h Handle)
}

// FSIndex implements Index over a filesystem rooted at the project.
type FSIndex struct {
	fsys fs.FS
}

// NewFSIndex creates an index over fsys, typically os.DirFS(projectRoot).
func NewFSIndex(fsys fs.FS) *FSIndex {
	return &FSIndex{fsys: fsys}
}

// Normalize converts a user-facing path into the fs.FS form: forward
// slashes, no leading "./" or "/", no trailing slash. The project root is ".".
func Normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "/")
	p = path.Clean(p)
	if p == "" || p == "/" {
		return "."
	}
	return p
}

// Find implements Index.
func (x *FSIndex) Find(dir string) ([]Handle, error) {
	dir = Normalize(dir)
	if !fs.ValidPath(dir) {
		return nil, &fs.PathError{Op: "find", Path: dir, Err: fs.ErrInvalid}
	}

	var handles []Handle
	err := fs.WalkDir(x.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		if isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		handles = append(handles, Handle{Path: p, IsDir: d.IsDir()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return handles, nil
}

// Lookup implements Index.
func (x *FSIndex) Lookup(p string) (Handle, bool) {
	p = Normalize(p)
	if !fs.ValidPath(p) {
		return Handle{}, false
	}
	info, err := fs.Stat(x.fsys, p)
	if err != nil {
		return Handle{}, false
	}
	return Handle{Path: p, IsDir: info.IsDir()}, true
}

// List returns the direct children of dir: directories first, then files,
// each group in lexical order.
func (x *FSIndex) List(dir string) ([]Handle, error) {
	dir = Normalize(dir)
	entries, err := fs.ReadDir(x.fsys, dir)
	if err != nil {
		return nil, err
	}

	var dirs, files []Handle
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		h := Handle{Path: path.Join(dir, e.Name()), IsDir: e.IsDir()}
		if h.IsDir {
			dirs = append(dirs, h)
		} else {
			files = append(files, h)
		}
	}
	return append(dirs, files...), nil
}

// Exists reports whether p is present in the project.
func (x *FSIndex) Exists(p string) (bool, error) {
	p = Normalize(p)
	if !fs.ValidPath(p) {
		return false, nil
	}
	_, err := fs.Stat(x.fsys, p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Resolve finds the asset a bookmark jump should land on. It prefers the
// first asset directly inside the bookmarked directory, so the browser opens
// the folder itself; otherwise it falls back to the asset at the bookmarked
// path.
func Resolve(idx Index, bookmark string) (Handle, bool) {
	target := Normalize(bookmark)
	if found, err := idx.Find(target); err == nil {
		for _, h := range found {
			if Dir(h) == target {
				return h, true
			}
		}
	}
	return idx.Lookup(target)
}

// Jump resolves bookmark and forwards the result to sel.
// Returns false when the bookmark no longer points at anything.
func Jump(idx Index, sel Selector, bookmark string) (Handle, bool) {
	h, ok := Resolve(idx, bookmark)
	if !ok {
		return Handle{}, false
	}
	sel.Select(h)
	sel.Ping(h)
	return h, true
}
