package tui

import "github.com/nikbrunner/pathmarks/internal/assets"

// ItemKind distinguishes between folders and files in the project browser.
type ItemKind int

const (
	ItemFolder ItemKind = iota
	ItemFile
)

// Item is one row of the project browser.
type Item struct {
	Kind   ItemKind
	Handle assets.Handle
}

func newItem(h assets.Handle) Item {
	kind := ItemFile
	if h.IsDir {
		kind = ItemFolder
	}
	return Item{Kind: kind, Handle: h}
}

// Path returns the project-relative path of the item.
func (i Item) Path() string {
	return i.Handle.Path
}

// Title returns a display title for the item.
func (i Item) Title() string {
	return i.Handle.Name()
}

// IsFolder returns true if this item is a folder.
func (i Item) IsFolder() bool {
	return i.Kind == ItemFolder
}
