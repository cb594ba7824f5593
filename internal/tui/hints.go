package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "enter")
	Desc string // Short description (e.g., "move", "jump")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move enter:jump"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "enter confirm  esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Edit   []Hint // Edit hints (a, d, c, etc.)
	Action []Hint // Action hints (enter, tab, etc.)
	System []Hint // System hints (?, q, esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode and pane.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		if a.focusedPane == PaneProject {
			return a.getProjectHints()
		}
		return a.getBookmarksHints()
	case ModeColor:
		// Hints are shown inside the modal itself.
		return HintSet{}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

func (a App) getBookmarksHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
		},
		Action: []Hint{
			{Key: "enter", Desc: "jump"},
			{Key: "y", Desc: "yank"},
		},
		Edit: []Hint{
			{Key: "d", Desc: "del"},
			{Key: "c", Desc: "color"},
			{Key: "C", Desc: "rgb"},
		},
	}
	if a.canAdd() {
		hints.Edit = append([]Hint{{Key: "a", Desc: "add"}}, hints.Edit...)
	}
	return hints
}

func (a App) getProjectHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "h", Desc: "up"},
			{Key: "l", Desc: "open"},
		},
		Action: []Hint{
			{Key: "y", Desc: "yank"},
		},
	}
	if a.canAdd() {
		hints.Edit = []Hint{{Key: "a", Desc: "add"}}
	}
	return hints
}

// getGlobalHints returns hints that apply in every pane.
func (a App) getGlobalHints() []Hint {
	return []Hint{
		{Key: "tab", Desc: "pane"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}
