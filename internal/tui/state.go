package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/pathmarks/internal/tui/layout"
)

// Mode is the input mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeColor       // color input modal
	ModeHelp        // help overlay
)

// Pane identifies the focused pane.
type Pane int

const (
	PaneBookmarks Pane = iota
	PaneProject
)

// MessageType controls how the message line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// BrowserNav holds state for the project browser.
type BrowserNav struct {
	Dir    string // current directory, "." at the project root
	Cursor int    // selected item index
	Items  []Item // children of Dir
	Err    error  // listing error for Dir, if any
}

// NewBrowserNav creates a new BrowserNav at the project root.
func NewBrowserNav() BrowserNav {
	return BrowserNav{Dir: "."}
}

// AtRoot returns true if currently at the project root.
func (b *BrowserNav) AtRoot() bool {
	return b.Dir == "."
}

// Current returns the item under the cursor.
func (b *BrowserNav) Current() (Item, bool) {
	if b.Cursor < 0 || b.Cursor >= len(b.Items) {
		return Item{}, false
	}
	return b.Items[b.Cursor], true
}

// Focus moves the cursor to the item at path. Returns false if Dir has no
// such item; the cursor is left alone in that case.
func (b *BrowserNav) Focus(path string) bool {
	for i, item := range b.Items {
		if item.Path() == path {
			b.Cursor = i
			return true
		}
	}
	return false
}

// clampCursor keeps a cursor inside [0, n).
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// ColorState holds state for the color input modal.
type ColorState struct {
	Input textinput.Model // "#rrggbb" or "r,g,b"
	Index int             // bookmark being recolored
}

// NewColorState creates a new ColorState with an initialized input.
func NewColorState(cfg layout.LayoutConfig) ColorState {
	input := textinput.New()
	input.Placeholder = "#rrggbb or r,g,b"
	input.CharLimit = cfg.Input.ColorCharLimit
	input.Width = cfg.Input.ColorWidth
	return ColorState{Input: input, Index: -1}
}

// Reset clears the color input for a new modal session.
func (c *ColorState) Reset() {
	c.Input.Reset()
	c.Input.Blur()
	c.Index = -1
}
