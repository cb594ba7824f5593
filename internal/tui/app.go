package tui

import (
	"path"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/pathmarks/internal/assets"
	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/nikbrunner/pathmarks/internal/session"
	"github.com/nikbrunner/pathmarks/internal/storage"
	"github.com/nikbrunner/pathmarks/internal/tui/layout"
)

// pingDuration is how long a jumped-to asset stays highlighted.
const pingDuration = 800 * time.Millisecond

// Project is the project tree the App browses and jumps into.
// assets.FSIndex satisfies it.
type Project interface {
	assets.Index
	List(dir string) ([]assets.Handle, error)
}

// BookmarksChangedMsg tells the App that the bookmarks file changed on disk.
type BookmarksChangedMsg struct{}

type pingDoneMsg struct {
	path string
}

// App is the main bubbletea model for the bookmarks panel.
type App struct {
	session      *session.Session
	project      Project
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	log          *zap.Logger

	labelTrimPrefix string
	palette         []model.Color
	clipboard       func(string) error
	changes         <-chan struct{}

	mode        Mode
	focusedPane Pane
	cursor      int // bookmarks pane cursor
	browser     BrowserNav
	color       ColorState
	pinged      string // path flashed after a jump

	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Session         *session.Session
	Project         Project
	LabelTrimPrefix string               // hidden from bookmark labels, e.g. "Assets/"
	Palette         []model.Color        // optional, uses the default palette if empty
	Changes         <-chan struct{}      // optional, external edits of the bookmarks file
	Clipboard       func(string) error   // optional, uses the system clipboard if nil
	Logger          *zap.Logger          // optional
	Keys            *KeyMap              // optional, uses default if nil
	Styles          *Styles              // optional, uses default if nil
	LayoutConfig    *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	palette := params.Palette
	if len(palette) == 0 {
		defaults := storage.DefaultConfig()
		palette, _ = defaults.PaletteColors()
	}

	clip := params.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}

	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}

	app := App{
		session:         params.Session,
		project:         params.Project,
		keys:            keys,
		styles:          styles,
		layoutConfig:    layoutCfg,
		log:             log,
		labelTrimPrefix: params.LabelTrimPrefix,
		palette:         palette,
		clipboard:       clip,
		changes:         params.Changes,
		browser:         NewBrowserNav(),
		color:           NewColorState(layoutCfg),
		width:           80,
		height:          24,
	}

	app.refreshBrowser()
	return app
}

// WithDimensions returns a copy of the App sized for a terminal of width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the bookmarks pane cursor.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// FocusedPane returns the pane that receives navigation keys.
func (a App) FocusedPane() Pane {
	return a.focusedPane
}

// BrowserDir returns the directory shown in the project pane.
func (a App) BrowserDir() string {
	return a.browser.Dir
}

// Selection returns the asset under the project browser cursor.
func (a App) Selection() (assets.Handle, bool) {
	item, ok := a.browser.Current()
	return item.Handle, ok
}

// Pinged returns the path of the asset currently flashed after a jump.
func (a App) Pinged() string {
	return a.pinged
}

// Message returns the message line text and its type.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.waitForChange()
}

// waitForChange blocks on the change channel and reports one change.
func (a App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	ch := a.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return BookmarksChangedMsg{}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case BookmarksChangedMsg:
		a.reload()
		return a, a.waitForChange()

	case pingDoneMsg:
		if a.pinged == msg.path {
			a.pinged = ""
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeColor:
			return a.updateColor(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		}
		return a.updateNormal(msg)
	}

	if a.mode == ModeColor {
		var cmd tea.Cmd
		a.color.Input, cmd = a.color.Input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.loaded() {
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			a.moveTo(0)
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false
	a.clearMessage()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.SwitchPane):
		if a.focusedPane == PaneBookmarks {
			a.focusedPane = PaneProject
		} else {
			a.focusedPane = PaneBookmarks
		}

	case key.Matches(msg, a.keys.Down):
		a.moveBy(1)

	case key.Matches(msg, a.keys.Up):
		a.moveBy(-1)

	case key.Matches(msg, a.keys.Bottom):
		a.moveTo(a.paneLen() - 1)

	case key.Matches(msg, a.keys.Left):
		if a.focusedPane == PaneProject {
			a.browseParent()
		}

	case key.Matches(msg, a.keys.Right):
		if a.focusedPane == PaneProject {
			a.browseInto()
		}

	case key.Matches(msg, a.keys.Jump):
		if a.focusedPane == PaneProject {
			a.browseInto()
			return a, nil
		}
		cmd := a.jump()
		return a, cmd

	case key.Matches(msg, a.keys.Add):
		a.addSelection()

	case key.Matches(msg, a.keys.Remove):
		if a.focusedPane == PaneBookmarks {
			a.removeCurrent()
		}

	case key.Matches(msg, a.keys.CycleColor):
		if a.focusedPane == PaneBookmarks {
			a.cycleColor()
		}

	case key.Matches(msg, a.keys.EditColor):
		if a.focusedPane == PaneBookmarks {
			cmd := a.openColorInput()
			return a, cmd
		}

	case key.Matches(msg, a.keys.Yank):
		a.yank()
	}

	return a, nil
}

func (a App) updateColor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit

	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		a.color.Reset()
		a.clearMessage()
		return a, nil

	case key.Matches(msg, a.keys.Confirm):
		c, err := model.ParseColor(a.color.Input.Value())
		if err != nil {
			a.setMessage(MessageError, err.Error())
			return a, nil
		}
		if err := a.session.Recolor(a.color.Index, c); err != nil {
			a.setMessage(MessageError, err.Error())
			return a, nil
		}
		a.mode = ModeNormal
		a.color.Reset()
		if a.flush() {
			a.setMessage(MessageSuccess, "Color set to "+c.Hex())
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.color.Input, cmd = a.color.Input.Update(msg)
	return a, cmd
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Help), key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	}
	return a, nil
}

func (a App) loaded() bool {
	return a.session != nil && a.session.State() == session.Loaded
}

// paneLen returns the number of rows in the focused pane.
func (a App) paneLen() int {
	if a.focusedPane == PaneProject {
		return len(a.browser.Items)
	}
	return a.session.Len()
}

func (a *App) moveBy(delta int) {
	a.moveTo(a.currentCursor() + delta)
}

func (a *App) moveTo(i int) {
	i = clampCursor(i, a.paneLen())
	if a.focusedPane == PaneProject {
		a.browser.Cursor = i
		return
	}
	a.cursor = i
}

func (a App) currentCursor() int {
	if a.focusedPane == PaneProject {
		return a.browser.Cursor
	}
	return a.cursor
}

// refreshBrowser re-lists the browser directory.
func (a *App) refreshBrowser() {
	a.browser.Items = nil
	a.browser.Err = nil
	if a.project == nil {
		return
	}

	handles, err := a.project.List(a.browser.Dir)
	if err != nil {
		a.log.Warn("listing project directory failed", zap.String("dir", a.browser.Dir), zap.Error(err))
		a.browser.Err = err
	}
	for _, h := range handles {
		a.browser.Items = append(a.browser.Items, newItem(h))
	}
	a.browser.Cursor = clampCursor(a.browser.Cursor, len(a.browser.Items))
}

func (a *App) browseInto() {
	item, ok := a.browser.Current()
	if !ok || !item.IsFolder() {
		return
	}
	a.browser.Dir = item.Path()
	a.browser.Cursor = 0
	a.refreshBrowser()
}

func (a *App) browseParent() {
	if a.browser.AtRoot() {
		return
	}
	from := a.browser.Dir
	a.browser.Dir = path.Dir(from)
	a.browser.Cursor = 0
	a.refreshBrowser()
	a.browser.Focus(from)
}

// Select implements assets.Selector by moving the project browser to h.
func (a *App) Select(h assets.Handle) {
	dir := assets.Dir(h)
	if dir != a.browser.Dir || len(a.browser.Items) == 0 {
		a.browser.Dir = dir
		a.browser.Cursor = 0
		a.refreshBrowser()
	}
	a.browser.Focus(h.Path)
}

// Ping implements assets.Selector by flashing h in the project browser.
func (a *App) Ping(h assets.Handle) {
	a.pinged = h.Path
}

func (a *App) jump() tea.Cmd {
	bookmarks := a.session.Bookmarks()
	if a.project == nil || a.cursor >= len(bookmarks) {
		return nil
	}
	target := bookmarks[a.cursor].Path

	h, ok := assets.Jump(a.project, a, target)
	if !ok {
		a.setMessage(MessageWarning, "Not found: "+target)
		return nil
	}
	a.log.Debug("jumped to bookmark", zap.String("bookmark", target), zap.String("asset", h.Path))

	pinged := h.Path
	return tea.Tick(pingDuration, func(time.Time) tea.Msg {
		return pingDoneMsg{path: pinged}
	})
}

// canAdd reports whether there is a selection to bookmark.
func (a App) canAdd() bool {
	_, ok := a.browser.Current()
	return ok && a.loaded()
}

func (a *App) addSelection() {
	item, ok := a.browser.Current()
	if !ok {
		a.setMessage(MessageWarning, "Nothing selected")
		return
	}

	p := item.Path()
	added, err := a.session.Add(p)
	if err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	if !added {
		a.cursor = a.session.IndexOf(p)
		a.setMessage(MessageInfo, "Already bookmarked")
		return
	}

	a.cursor = a.session.Len() - 1
	if a.flush() {
		a.setMessage(MessageSuccess, "Added "+p)
	}
}

func (a *App) removeCurrent() {
	bookmarks := a.session.Bookmarks()
	if a.cursor >= len(bookmarks) {
		return
	}
	p := bookmarks[a.cursor].Path

	if err := a.session.Remove(a.cursor); err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.cursor = clampCursor(a.cursor, a.session.Len())
	if a.flush() {
		a.setMessage(MessageSuccess, "Removed "+p)
	}
}

func (a *App) cycleColor() {
	bookmarks := a.session.Bookmarks()
	if a.cursor >= len(bookmarks) {
		return
	}

	next := model.NextInPalette(bookmarks[a.cursor].Color, a.palette)
	if err := a.session.Recolor(a.cursor, next); err != nil {
		a.setMessage(MessageError, err.Error())
		return
	}
	a.flush()
}

func (a *App) openColorInput() tea.Cmd {
	bookmarks := a.session.Bookmarks()
	if a.cursor >= len(bookmarks) {
		return nil
	}

	a.color.Reset()
	a.color.Index = a.cursor
	if c := bookmarks[a.cursor].Color; !c.IsWhite() {
		a.color.Input.SetValue(c.Hex())
	}
	a.color.Input.Focus()
	a.mode = ModeColor
	return textinput.Blink
}

func (a *App) yank() {
	var p string
	if a.focusedPane == PaneProject {
		item, ok := a.browser.Current()
		if !ok {
			return
		}
		p = item.Path()
	} else {
		bookmarks := a.session.Bookmarks()
		if a.cursor >= len(bookmarks) {
			return
		}
		p = bookmarks[a.cursor].Path
	}

	if err := a.clipboard(p); err != nil {
		a.setMessage(MessageError, "Clipboard: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "Yanked "+p)
}

// flush saves pending changes and reports failures on the message line.
// The session stays dirty on failure, so the next change retries the save.
func (a *App) flush() bool {
	if err := a.session.Flush(); err != nil {
		a.setMessage(MessageError, err.Error())
		return false
	}
	return true
}

// reload picks up an external edit of the bookmarks file.
func (a *App) reload() {
	reloaded, err := a.session.Reload()
	if err != nil {
		a.setMessage(MessageError, "Reload failed: "+err.Error())
		return
	}
	if !reloaded {
		return
	}
	a.cursor = clampCursor(a.cursor, a.session.Len())
	if a.session.Dirty() {
		a.flush()
	}
	a.setMessage(MessageInfo, "Bookmarks reloaded")
}

// label is the display text of a bookmark row.
func (a App) label(p string) string {
	if a.labelTrimPrefix != "" {
		if trimmed := strings.TrimPrefix(p, a.labelTrimPrefix); trimmed != "" && trimmed != p {
			return trimmed
		}
	}
	return p
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
