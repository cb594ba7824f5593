package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemPinged   lipgloss.Style // asset flashed after a jump
	Folder       lipgloss.Style
	RemoveHint   lipgloss.Style
	Status       lipgloss.Style // "Current : ..." line
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Error        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "jump", "move")
	HintLabel    lipgloss.Style // "Local"/"Global" prefix of hint lines
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent; bookmark
// swatches are the only other color on screen.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	alert := lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		ItemPinged: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Reverse(true),

		Folder: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		RemoveHint: lipgloss.NewStyle().
			Foreground(subtle),

		Status: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(alert).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(accent),
	}
}
