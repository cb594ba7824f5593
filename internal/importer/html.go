package importer

import (
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/nikbrunner/pathmarks/internal/model"
	"golang.org/x/net/html"
)

// Result is what an import produced.
type Result struct {
	Bookmarks []model.Bookmark
	Skipped   int // links that are not files inside the project
}

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns the file links
// that point inside projectRoot, in document order. Folders are flattened.
// Links without a scheme are taken as project-relative paths already.
func ParseHTMLBookmarks(r io.Reader, projectRoot string) (Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Result{}, err
	}

	var result Result

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == "a" {
			href := getAttr(n, "href")
			if href == "" {
				// Skip bookmarks without a target
				return
			}

			p, ok := projectPath(href, projectRoot)
			if !ok {
				result.Skipped++
				return
			}

			bookmark := model.NewBookmark(p)
			if raw := getAttr(n, "color"); raw != "" {
				if c, err := model.ParseColor(raw); err == nil {
					bookmark.Color = c
				}
			}
			result.Bookmarks = append(result.Bookmarks, bookmark)
			return // Don't recurse into A
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return result, nil
}

// projectPath maps an href to a project-relative slash path.
func projectPath(href, projectRoot string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	switch u.Scheme {
	case "":
		p := strings.TrimPrefix(filepath.ToSlash(u.Path), "./")
		if p == "" || strings.HasPrefix(p, "../") || filepath.IsAbs(u.Path) {
			return "", false
		}
		return p, true
	case "file":
	default:
		return "", false
	}

	abs := u.Path
	if len(abs) >= 3 && abs[0] == '/' && abs[2] == ':' {
		abs = abs[1:] // /C:/x -> C:/x
	}
	rel, err := filepath.Rel(projectRoot, filepath.FromSlash(abs))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
