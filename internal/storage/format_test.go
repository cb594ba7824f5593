package storage_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/nikbrunner/pathmarks/internal/storage"
	"gotest.tools/v3/assert"
)

func TestDecodeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want model.Bookmark
	}{
		{
			name: "colored",
			line: "Assets/Props @R:10G:20B:30",
			want: model.Bookmark{Path: "Assets/Props", Color: model.RGB(10, 20, 30)},
		},
		{
			name: "bare path is white",
			line: "Assets/Foo",
			want: model.Bookmark{Path: "Assets/Foo", Color: model.White},
		},
		{
			name: "explicit white",
			line: "Assets/Foo @R:255G:255B:255",
			want: model.Bookmark{Path: "Assets/Foo", Color: model.White},
		},
		{
			name: "black",
			line: "Assets/Dark @R:0G:0B:0",
			want: model.Bookmark{Path: "Assets/Dark", Color: model.RGB(0, 0, 0)},
		},
		{
			name: "spaces around numbers",
			line: "Assets/Props @R: 10G:20 B:30 ",
			want: model.Bookmark{Path: "Assets/Props", Color: model.RGB(10, 20, 30)},
		},
		{
			name: "path with spaces",
			line: "Assets/My Props/Big Rocks @R:1G:2B:3",
			want: model.Bookmark{Path: "Assets/My Props/Big Rocks", Color: model.RGB(1, 2, 3)},
		},
		{
			name: "empty line",
			line: "",
			want: model.Bookmark{Path: "", Color: model.White},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.DecodeLine(tt.line)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"above byte range", "Assets/Bad @R:999G:0B:0"},
		{"negative", "Assets/Bad @R:-1G:0B:0"},
		{"not a number", "Assets/Bad @R:xG:0B:0"},
		{"empty component", "Assets/Bad @R:G:0B:0"},
		{"missing green marker", "Assets/Bad @R:10"},
		{"missing blue marker", "Assets/Bad @R:10G:20"},
		{"hex component", "Assets/Bad @R:0xffG:0B:0"},
		{"second marker in path", "Assets/x @R:y @R:1G:2B:3"},
		{"trailing second suffix", "Assets/a @R:1G:2B:3 @R:255G:255B:255"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := storage.Decode([]string{"Assets/Good", tt.line})

			if store != nil {
				t.Error("expected no partial store on parse failure")
			}
			var perr *storage.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if perr.Line != 2 {
				t.Errorf("expected line 2, got %d", perr.Line)
			}
			if perr.Text != tt.line {
				t.Errorf("expected text %q, got %q", tt.line, perr.Text)
			}
		})
	}
}

func TestDecode_OutOfRangeUnwrapsToStrconv(t *testing.T) {
	_, err := storage.Decode([]string{"Assets/Bad @R:999G:0B:0"})

	assert.ErrorIs(t, err, strconv.ErrRange)
	assert.ErrorContains(t, err, "bookmarks file error")
}

func TestEncodeLine(t *testing.T) {
	tests := []struct {
		name string
		b    model.Bookmark
		want string
	}{
		{"colored", model.Bookmark{Path: "Assets/Props", Color: model.RGB(10, 20, 30)}, "Assets/Props @R:10G:20B:30"},
		{"white has no suffix", model.Bookmark{Path: "Assets/Foo", Color: model.White}, "Assets/Foo"},
		{"almost white", model.Bookmark{Path: "Assets/Foo", Color: model.RGB(255, 255, 254)}, "Assets/Foo @R:255G:255B:254"},
		{"black", model.Bookmark{Path: "A", Color: model.RGB(0, 0, 0)}, "A @R:0G:0B:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, storage.EncodeLine(tt.b), tt.want)
		})
	}
}

func TestEncode_WhiteIsDefault(t *testing.T) {
	for _, c := range []model.Color{model.White, model.RGB(0, 0, 0), model.RGB(255, 0, 255), model.RGB(12, 255, 255)} {
		line := storage.EncodeLine(model.Bookmark{Path: "P", Color: c})
		hasSuffix := strings.Contains(line, " @R:")
		if hasSuffix == c.IsWhite() {
			t.Errorf("color %s: line %q, suffix present = %v", c, line, hasSuffix)
		}
	}
}

func TestDecodeEncode_RoundTrip(t *testing.T) {
	lines := []string{
		"Assets/Props @R:10G:20B:30",
		"Assets/Foo",
		"Assets/Scenes/Main.unity",
		"Assets/Dark @R:0G:0B:0",
		"Assets/Foo",
	}

	store, err := storage.Decode(lines)
	assert.NilError(t, err)

	again, err := storage.Decode(storage.Encode(store))
	assert.NilError(t, err)

	assert.DeepEqual(t, again, store)
	assert.DeepEqual(t, storage.Encode(again), lines)
}

func TestDecode_ExplicitWhiteIsNarrowed(t *testing.T) {
	store, err := storage.Decode([]string{"A @R:255G:255B:255"})
	assert.NilError(t, err)

	assert.DeepEqual(t, storage.Encode(store), []string{"A"})
}

func TestReadLines(t *testing.T) {
	lines, err := storage.ReadLines(strings.NewReader("a\r\nb\n\nc"))
	assert.NilError(t, err)
	assert.DeepEqual(t, lines, []string{"a", "b", "", "c"})

	lines, err = storage.ReadLines(strings.NewReader(""))
	assert.NilError(t, err)
	assert.Equal(t, len(lines), 0)
}

func TestDecodeLine_PathNeverContainsMarker(t *testing.T) {
	for _, line := range []string{
		"Assets/a @R:1G:2B:3",
		"Assets/a @R:1G:2B:3 @R:255G:255B:255",
		"Assets/x @R:y @R:1G:2B:3",
		"Assets/x@R:1G:2B:3",
	} {
		b, err := storage.DecodeLine(line)
		if err != nil {
			continue
		}
		assert.NilError(t, storage.ValidatePath(b.Path), "line %q", line)

		again, err := storage.DecodeLine(storage.EncodeLine(b))
		assert.NilError(t, err)
		assert.Equal(t, again, b)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "Assets/Props", false},
		{"spaces", "Assets/My Props", false},
		{"marker without space", "Assets/x@R:1", false},
		{"marker", "Assets/x @R:9G:9B:9", true},
		{"newline", "Assets/a\nAssets/b", true},
		{"carriage return", "Assets/a\r", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storage.ValidatePath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, storage.ErrInvalidPath)
				return
			}
			assert.NilError(t, err)
		})
	}
}

func TestReadLines_LongLine(t *testing.T) {
	long := "Assets/" + strings.Repeat("x", 200*1024)
	lines, err := storage.ReadLines(strings.NewReader("Assets/A\n" + long + " @R:1G:2B:3\nAssets/B\n"))
	assert.NilError(t, err)
	assert.Equal(t, len(lines), 3)

	store, err := storage.Decode(lines)
	assert.NilError(t, err)
	assert.Equal(t, store.Bookmarks[1].Path, long)
	assert.Equal(t, store.Bookmarks[1].Color, model.RGB(1, 2, 3))
}
