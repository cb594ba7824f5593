package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + status line (1) + pane borders (2) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// TwoPaneWidthOffset is subtracted before splitting the width.
	// Accounts for app padding (4) and the borders of both panes (4).
	TwoPaneWidthOffset int

	// BookmarksWidthPercent is the share of the width given to the bookmarks pane.
	BookmarksWidthPercent int

	// MinPaneWidth is the minimum width for each pane.
	MinPaneWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int

	// HeaderLines is the number of lines above the items in each pane (title + gap).
	HeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	ColorCharLimit int
	ColorWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:       7, // app padding (1) + status line (1) + pane borders (2) + help bar (3)
			MinHeight:             5,
			TwoPaneWidthOffset:    8,
			BookmarksWidthPercent: 45,
			MinPaneWidth:          20,
			ContentPadding:        4,
			HeaderLines:           2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			MinWidth:             40,
			MaxWidth:             70,
			HelpLeftColumnWidth:  22,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			ColorCharLimit: 16,
			ColorWidth:     20,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
