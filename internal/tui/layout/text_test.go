package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "Assets", "Assets"},
		{"bold", "\x1b[1mAssets\x1b[0m", "Assets"},
		{"truecolor swatch", "\x1b[38;2;255;0;0m■\x1b[0m Player", "■ Player"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
		{"multiple codes", "\x1b[1m\x1b[31mred bold\x1b[0m", "red bold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "Scenes", 6},
		{"with ANSI bold", "\x1b[1mScenes\x1b[0m", 6},
		{"swatch", "\x1b[38;2;0;255;0m■\x1b[0m", 1},
		{"unicode", "シーン", 3},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleLength(tt.input)
			if got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "Player", 10, "Player", false},
		{"exact length", "Player", 6, "Player", false},
		{"needs truncation", "Scripts/Player", 8, "Scrip...", true},
		{"very short max", "Player", 3, "...", true},
		{"max is 1", "Player", 1, ".", true},
		{"max is 0", "Player", 0, "", true},
		{"empty string", "", 10, "", false},
		{"unicode text", "シーンファイル", 4, "シ...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateWithPrefixSuffix(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		prefix    string
		suffix    string
		want      string
		truncated bool
	}{
		{"no truncation", "Scenes", 12, "■ ", "/", "■ Scenes/", false},
		{"with truncation", "Characters", 10, "■ ", "/", "■ Char.../", true}, // 2+4+3+1=10
		{"no prefix/suffix", "Materials", 8, "", "", "Mater...", true},
		{"empty text", "", 10, "■ ", "/", "■ /", false},
		{"text exactly fits max", "x", 4, "■ ", "/", "■ x/", false},
		{"needs truncation tight", "abc", 4, "■ ", "/", "■...", true}, // falls back to simple truncation
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateWithPrefixSuffix(tt.text, tt.maxWidth, tt.prefix, tt.suffix, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateWithPrefixSuffix(%q, %d, %q, %q) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, tt.prefix, tt.suffix, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncatePathFromLeft(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		path     string
		maxWidth int
		want     string
	}{
		{"fits", "Assets/Scenes/Main.unity", 30, "Assets/Scenes/Main.unity"},
		{"exact", "Assets/Scenes/Main.unity", 24, "Assets/Scenes/Main.unity"},
		{"keeps tail", "Assets/Scenes/Main.unity", 12, "...ain.unity"},
		{"only ellipsis", "Assets/Scenes/Main.unity", 3, "..."},
		{"partial ellipsis", "Assets/Scenes/Main.unity", 2, ".."},
		{"zero width", "Assets/Scenes/Main.unity", 0, ""},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePathFromLeft(tt.path, tt.maxWidth, cfg)
			if got != tt.want {
				t.Errorf("TruncatePathFromLeft(%q, %d) = %q, want %q", tt.path, tt.maxWidth, got, tt.want)
			}
		})
	}
}
