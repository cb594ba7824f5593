package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nikbrunner/pathmarks/internal/model"
)

// Color suffix markers of the line format: "<path> @R:<r>G:<g>B:<b>".
const (
	markerRed   = " @R:"
	markerGreen = "G:"
	markerBlue  = "B:"
)

// maxLineLength bounds a single line of the bookmarks file.
const maxLineLength = 16 * 1024 * 1024

var errMissingMarker = errors.New("missing color marker")

// ParseError reports a bookmarks file line whose color suffix is malformed.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bookmarks file error: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode parses raw lines into a Store, one bookmark per line, in order.
// Any malformed line fails the whole decode.
func Decode(lines []string) (*model.Store, error) {
	store := &model.Store{
		Bookmarks: make([]model.Bookmark, 0, len(lines)),
	}
	for i, line := range lines {
		b, err := DecodeLine(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}
		store.Bookmarks = append(store.Bookmarks, b)
	}
	return store, nil
}

// DecodeLine parses a single line. A line without the color marker is a
// bare, white bookmark. The path ends at the first marker, so a decoded path
// never contains one.
func DecodeLine(line string) (model.Bookmark, error) {
	path, rest, ok := strings.Cut(line, markerRed)
	if !ok {
		return model.NewBookmark(line), nil
	}

	red, rest, ok := strings.Cut(rest, markerGreen)
	if !ok {
		return model.Bookmark{}, fmt.Errorf("%w %q", errMissingMarker, markerGreen)
	}
	green, blue, ok := strings.Cut(rest, markerBlue)
	if !ok {
		return model.Bookmark{}, fmt.Errorf("%w %q", errMissingMarker, markerBlue)
	}

	var rgb [3]uint8
	for i, s := range []string{red, green, blue} {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
		if err != nil {
			return model.Bookmark{}, err
		}
		rgb[i] = uint8(v)
	}

	return model.Bookmark{
		Path:  path,
		Color: model.RGB(rgb[0], rgb[1], rgb[2]),
	}, nil
}

// ValidatePath reports whether p survives an encode/decode round trip:
// it must not contain the color marker or a line break.
func ValidatePath(p string) error {
	if strings.Contains(p, markerRed) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidPath, p, markerRed)
	}
	if strings.ContainsAny(p, "\r\n") {
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidPath, p)
	}
	return nil
}

// Encode serializes a Store into lines. White bookmarks are written as the
// bare path; all others carry the color suffix.
func Encode(store *model.Store) []string {
	lines := make([]string, len(store.Bookmarks))
	for i, b := range store.Bookmarks {
		lines[i] = EncodeLine(b)
	}
	return lines
}

// EncodeLine serializes one bookmark.
func EncodeLine(b model.Bookmark) string {
	if b.Color.IsWhite() {
		return b.Path
	}
	return b.Path +
		markerRed + strconv.Itoa(int(b.Color.R)) +
		markerGreen + strconv.Itoa(int(b.Color.G)) +
		markerBlue + strconv.Itoa(int(b.Color.B))
}

// ReadLines splits r into lines, dropping "\n" and a trailing "\r".
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
