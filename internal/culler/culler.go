package culler

import (
	"context"
	"sync"

	"github.com/nikbrunner/pathmarks/internal/model"
	"golang.org/x/sync/errgroup"
)

// Status represents whether a bookmarked path still exists.
type Status int

const (
	Present Status = iota // path exists in the project
	Missing               // path was removed or renamed
	Failed                // the check itself failed (permissions, I/O)
)

func (s Status) String() string {
	switch s {
	case Present:
		return "present"
	case Missing:
		return "missing"
	default:
		return "error"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Bookmark model.Bookmark
	Index    int // position in the bookmark list
	Status   Status
	Err      error
}

// Checker reports whether a project path exists. assets.FSIndex satisfies it.
type Checker interface {
	Exists(p string) (bool, error)
}

// ProgressFunc is called after each path is checked.
// completed is the number of paths checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// CheckPaths checks all bookmark paths concurrently and returns results in
// list order. A cancelled ctx stops scheduling further checks; the returned
// error is ctx.Err() in that case.
func CheckPaths(ctx context.Context, bookmarks []model.Bookmark, checker Checker, concurrency int, onProgress ProgressFunc) ([]Result, error) {
	if len(bookmarks) == 0 {
		return nil, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(bookmarks))

	var progressMu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range bookmarks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkPath(checker, bookmarks[i], i)

			if onProgress != nil {
				progressMu.Lock()
				completed++
				onProgress(completed, len(bookmarks))
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Unscheduled slots would read as Present.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkPath(checker Checker, b model.Bookmark, index int) Result {
	result := Result{Bookmark: b, Index: index}

	ok, err := checker.Exists(b.Path)
	switch {
	case err != nil:
		result.Status = Failed
		result.Err = err
	case ok:
		result.Status = Present
	default:
		result.Status = Missing
	}
	return result
}

// MissingResults returns the results whose path no longer exists, in list order.
func MissingResults(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Status == Missing {
			out = append(out, r)
		}
	}
	return out
}
