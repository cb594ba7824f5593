package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/nikbrunner/pathmarks/internal/session"
	"github.com/nikbrunner/pathmarks/internal/tui/layout"
)

const (
	swatchGlyph = "■"
	removeGlyph = " x"
)

// renderView creates the complete two-pane view.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeColor:
		return a.renderColorModal()
	}

	if !a.loaded() {
		return a.renderUnloaded()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	widths := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderBookmarksPane(widths.Bookmarks, paneHeight),
		a.renderProjectPane(widths.Project, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderStatusLine(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderUnloaded shows only the reason the list is unavailable.
func (a App) renderUnloaded() string {
	label := "No bookmarks location"
	if a.session != nil && a.session.State() == session.Failed {
		label = "Bookmarks file error"
	}

	content := a.styles.App.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		a.styles.Error.Render(label),
		"",
		a.renderHintSlice([]Hint{{Key: "q", Desc: "quit"}}),
	))
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderStatusLine renders "Current : <selected asset>" above the panes.
func (a App) renderStatusLine() string {
	current := "(none)"
	if h, ok := a.Selection(); ok {
		current = h.Path
	}

	// Terminal width minus app padding (left=2, right=2), status padding and label
	const label = "Current : "
	available := a.width - 5 - len(label)
	current = layout.TruncatePathFromLeft(current, available, a.layoutConfig.Text)

	return a.styles.Status.Render(label + current)
}

func (a App) renderBookmarksPane(width, height int) string {
	var content strings.Builder

	content.WriteString(a.styles.Title.Render("Bookmarks") + "\n\n")

	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.HeaderLines)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	bookmarks := a.session.Bookmarks()
	if len(bookmarks) == 0 {
		content.WriteString(a.styles.Empty.Render("(no bookmarks)"))
	} else {
		// Calculate viewport offset to keep cursor visible
		offset := layout.CalculateViewportOffset(a.cursor, len(bookmarks), visibleHeight)

		for i, b := range bookmarks {
			if i < offset {
				continue
			}
			if i >= offset+visibleHeight {
				break
			}
			isSelected := a.focusedPane == PaneBookmarks && i == a.cursor
			content.WriteString(a.renderBookmarkRow(b, isSelected, itemWidth) + "\n")
		}
	}

	return a.paneStyle(PaneBookmarks).
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderBookmarkRow renders "■ label x": swatch, trimmed label, remove hint.
func (a App) renderBookmarkRow(b model.Bookmark, selected bool, maxWidth int) string {
	// swatch (1) + space (1) + item padding (1) + remove hint (2)
	textWidth := maxWidth - 5
	if textWidth < 1 {
		textWidth = 1
	}

	label, _ := layout.TruncateText(a.label(b.Path), textWidth, a.layoutConfig.Text)
	label = padRight(label, textWidth)

	body := a.styles.Item.Render(label)
	if selected {
		body = a.styles.ItemSelected.Render(label)
	}

	return swatch(b.Color) + " " + body + a.styles.RemoveHint.Render(removeGlyph)
}

func (a App) renderProjectPane(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	title := "Project"
	if !a.browser.AtRoot() {
		title = layout.TruncatePathFromLeft(a.browser.Dir, itemWidth, a.layoutConfig.Text)
	}
	content.WriteString(a.styles.Title.Render(title) + "\n\n")

	visibleHeight := layout.CalculateVisibleHeight(height, a.layoutConfig.Pane.HeaderLines)

	switch {
	case a.browser.Err != nil:
		content.WriteString(a.styles.Error.Render("(unreadable)"))
	case len(a.browser.Items) == 0:
		content.WriteString(a.styles.Empty.Render("(empty)"))
	default:
		marks := make(map[string]model.Color)
		for _, b := range a.session.Bookmarks() {
			marks[b.Path] = b.Color
		}

		offset := layout.CalculateViewportOffset(a.browser.Cursor, len(a.browser.Items), visibleHeight)
		for i, item := range a.browser.Items {
			if i < offset {
				continue
			}
			if i >= offset+visibleHeight {
				break
			}
			isCursor := a.focusedPane == PaneProject && i == a.browser.Cursor
			color, marked := marks[item.Path()]
			content.WriteString(a.renderItem(item, isCursor, marked, color, itemWidth) + "\n")
		}
	}

	return a.paneStyle(PaneProject).
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderItem renders a project browser row. Bookmarked assets carry their swatch.
func (a App) renderItem(item Item, isCursor, marked bool, color model.Color, maxWidth int) string {
	mark := "  "
	if marked {
		mark = swatch(color) + " "
	}

	var suffix string
	if item.IsFolder() {
		suffix = "/"
	}

	// mark (2) + item padding (1)
	textWidth := maxWidth - 3
	line, _ := layout.TruncateWithPrefixSuffix(item.Title(), textWidth, "", suffix, a.layoutConfig.Text)

	switch {
	case item.Path() == a.pinged:
		return mark + a.styles.ItemPinged.Render(padRight(line, textWidth))
	case isCursor:
		return mark + a.styles.ItemSelected.Render(padRight(line, textWidth))
	case item.IsFolder():
		return mark + a.styles.Item.Inherit(a.styles.Folder).Render(line)
	default:
		return mark + a.styles.Item.Render(line)
	}
}

func (a App) paneStyle(p Pane) lipgloss.Style {
	if a.focusedPane == p {
		return a.styles.PaneActive
	}
	return a.styles.Pane
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: Local (contextual) keyboard hints
	if local := a.renderHints(a.getContextualHints()); local != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+local)
	}

	// Line 3: Global keyboard hints
	if a.mode == ModeNormal {
		if global := a.renderHintSlice(a.getGlobalHints()); global != "" {
			lines = append(lines, a.styles.HintLabel.Render("Global ")+global)
		}
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderColorModal renders the color input for the bookmark being recolored.
func (a App) renderColorModal() string {
	var content strings.Builder

	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	content.WriteString(a.styles.Title.Render("Set Color") + "\n\n")

	bookmarks := a.session.Bookmarks()
	if a.color.Index >= 0 && a.color.Index < len(bookmarks) {
		b := bookmarks[a.color.Index]
		path := layout.TruncatePathFromLeft(b.Path, modalWidth-8, a.layoutConfig.Text)
		content.WriteString(swatch(b.Color) + " " + path + "\n\n")
	}

	content.WriteString("Color:\n")
	content.WriteString(a.color.Input.View())
	content.WriteString("\n\n")

	if a.messageText != "" {
		content.WriteString(a.renderMessageLine() + "\n\n")
	}

	content.WriteString(a.renderHintsInline([]Hint{
		{Key: "enter", Desc: "apply"},
		{Key: "esc", Desc: "cancel"},
		{Key: "white", Desc: "clears"},
	}))

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(content.String()),
	)
}

func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	// Left column: navigation
	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k    move\n")
	left.WriteString("gg/G   top/bottom\n")
	left.WriteString("tab    switch pane\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("project") + "\n")
	left.WriteString("h      parent folder\n")
	left.WriteString("l      open folder\n")
	left.WriteString("a      bookmark it\n")
	left.WriteString("y      yank path\n")

	// Right column: bookmarks
	var right strings.Builder
	right.WriteString(a.styles.Title.Render("bookmarks") + "\n")
	right.WriteString("enter  jump to asset\n")
	right.WriteString("a      add selection\n")
	right.WriteString("d/x    remove\n")
	right.WriteString("c      cycle color\n")
	right.WriteString("C      set color\n")
	right.WriteString("y      yank path\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}

// swatch renders the color tag glyph in the bookmark's color.
func swatch(c model.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(swatchGlyph)
}

// padRight pads s with spaces to width visible cells, so highlights fill the row.
func padRight(s string, width int) string {
	if n := width - layout.VisibleLength(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
