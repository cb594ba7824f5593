package exporter

import (
	"fmt"
	"html"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/pathmarks/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: <projectRoot>/pathmarks-export-YYYY-MM-DD.html
func DefaultExportPath(projectRoot string) string {
	filename := fmt.Sprintf("pathmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(projectRoot, filename)
}

// FileURL turns a project-relative bookmark path into an absolute file:// URL.
func FileURL(projectRoot, p string) string {
	abs := filepath.Join(projectRoot, filepath.FromSlash(p))
	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed // C:/x -> /C:/x
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String()
}

// ExportHTML exports the bookmarks to Netscape bookmark HTML format.
// Every bookmark becomes a file:// link inside one folder named after the
// project; tagged bookmarks carry their color in a COLOR attribute.
func ExportHTML(bookmarks []model.Bookmark, projectRoot string) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(projectName(projectRoot)))
	b.WriteString("    <DL><p>\n")
	writeItems(&b, bookmarks, projectRoot, 2)
	b.WriteString("    </DL><p>\n")

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeItems(b *strings.Builder, bookmarks []model.Bookmark, projectRoot string, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, bookmark := range bookmarks {
		if bookmark.Path == "" {
			continue
		}
		color := ""
		if bookmark.Tagged() {
			color = fmt.Sprintf(" COLOR=\"%s\"", bookmark.Color.Hex())
		}
		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\"%s>%s</A>\n",
			prefix,
			html.EscapeString(FileURL(projectRoot, bookmark.Path)),
			color,
			html.EscapeString(bookmark.Path),
		)
	}
}

func projectName(projectRoot string) string {
	name := filepath.Base(projectRoot)
	if name == "." || name == string(os.PathSeparator) || name == "" {
		return "Project"
	}
	return name
}
