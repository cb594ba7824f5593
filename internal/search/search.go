package search

import (
	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       model.Bookmark
	Index          int // position in the bookmark list
	MatchedIndexes []int
	Score          int
}

// bookmarkPaths implements fuzzy.Source for a bookmark slice.
type bookmarkPaths []model.Bookmark

func (bp bookmarkPaths) String(i int) string {
	return bp[i].Path
}

func (bp bookmarkPaths) Len() int {
	return len(bp)
}

// FuzzySearchBookmarks searches bookmarks by path using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchBookmarks(bookmarks []model.Bookmark, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, bookmarkPaths(bookmarks))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       bookmarks[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
