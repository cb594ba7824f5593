package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color is an opaque RGB color tag. Alpha is always implied as 255.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// White is the default, untagged color.
var White = Color{R: 255, G: 255, B: 255}

// RGB creates a Color from byte components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// IsWhite returns true for the implicit "no tag" color.
func (c Color) IsWhite() bool {
	return c == White
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// ParseColor accepts "#rrggbb", "#rgb", "r,g,b" (decimal bytes) and "white".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if strings.EqualFold(s, "white") || strings.EqualFold(s, "none") {
		return White, nil
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var bytes [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		bytes[i] = uint8(v)
	}
	return RGB(bytes[0], bytes[1], bytes[2]), nil
}

// MarshalJSON encodes the color as a "#rrggbb" string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON decodes a "#rrggbb" string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// NextInPalette returns the palette entry after c, wrapping around.
// A color not in the palette moves to the first entry.
func NextInPalette(c Color, palette []Color) Color {
	if len(palette) == 0 {
		return c
	}
	for i, p := range palette {
		if p == c {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}
