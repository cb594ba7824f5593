package model

// Bookmark is a saved project path with an optional color tag.
type Bookmark struct {
	Path  string `json:"path"`
	Color Color  `json:"color"`
}

// NewBookmark creates an untagged (white) Bookmark for path.
func NewBookmark(path string) Bookmark {
	return Bookmark{
		Path:  path,
		Color: White,
	}
}

// Tagged returns true if the bookmark carries a non-default color.
func (b Bookmark) Tagged() bool {
	return !b.Color.IsWhite()
}
