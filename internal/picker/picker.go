// Package picker is a small standalone program for choosing one bookmark out
// of several fuzzy search results.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/nikbrunner/pathmarks/internal/search"
	"github.com/nikbrunner/pathmarks/internal/tui/layout"
)

// chromeLines is the number of rows taken by the header and footer.
const chromeLines = 5

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true)

	positionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Choose key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
	Top:    key.NewBinding(key.WithKeys("g", "home")),
	Bottom: key.NewBinding(key.WithKeys("G", "end")),
	Choose: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// Picker lists search results and lets the user choose one.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
	text      layout.TextConfig
}

// New creates a Picker over results, best match first.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
		text:    layout.DefaultConfig().Text,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, keys.Choose):
			if len(p.results) == 0 {
				p.cancelled = true
			} else {
				p.selected = true
			}
			return p, tea.Quit
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Top):
			p.cursor = 0
		case key.Matches(msg, keys.Bottom):
			p.cursor = max(len(p.results)-1, 0)
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Jump: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n")

	visible := layout.CalculateVisibleHeight(p.height, chromeLines)
	offset := layout.CalculateViewportOffset(p.cursor, len(p.results), visible)
	end := min(offset+visible, len(p.results))

	for i := offset; i < end; i++ {
		b.WriteString(p.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  g/G: top/bottom  Enter: jump  q/Esc: cancel"))

	return b.String()
}

func (p Picker) renderRow(i int) string {
	result := p.results[i]

	cursor := "  "
	style := normalStyle
	if i == p.cursor {
		cursor = "> "
		style = selectedStyle
	}

	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(result.Bookmark.Color.Hex())).
		Render("■")
	position := positionStyle.Render(fmt.Sprintf("%3d", result.Index+1))

	// cursor, position, swatch and the spaces between them
	avail := p.width - 9
	return fmt.Sprintf("%s%s %s %s", cursor, position, swatch, p.renderPath(result, style, avail))
}

// renderPath highlights the matched characters. A path that has to be
// shortened loses its highlighting.
func (p Picker) renderPath(result search.SearchResult, style lipgloss.Style, width int) string {
	path := result.Bookmark.Path
	if short := layout.TruncatePathFromLeft(path, width, p.text); short != path {
		return style.Render(short)
	}

	matched := make(map[int]bool, len(result.MatchedIndexes))
	for _, idx := range result.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range path {
		if matched[i] {
			b.WriteString(matchStyle.Inherit(style).Render(string(r)))
		} else {
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedBookmark returns a copy of the chosen bookmark, or nil if nothing
// was chosen.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return nil
	}
	b := p.results[p.cursor].Bookmark
	return &b
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
