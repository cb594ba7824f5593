package layout

// PaneLayout holds calculated pane widths.
type PaneLayout struct {
	Bookmarks int
	Project   int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidths splits the terminal width between the bookmarks pane
// and the project pane. Each pane gets at least MinPaneWidth.
func CalculatePaneWidths(terminalWidth int, cfg PaneConfig) PaneLayout {
	available := terminalWidth - cfg.TwoPaneWidthOffset

	bookmarks := available * cfg.BookmarksWidthPercent / 100
	project := available - bookmarks

	if bookmarks < cfg.MinPaneWidth {
		bookmarks = cfg.MinPaneWidth
	}
	if project < cfg.MinPaneWidth {
		project = cfg.MinPaneWidth
	}

	return PaneLayout{
		Bookmarks: bookmarks,
		Project:   project,
	}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
