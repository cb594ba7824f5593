package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pathmarks/internal/assets"
	"github.com/nikbrunner/pathmarks/internal/culler"
	"github.com/nikbrunner/pathmarks/internal/exporter"
	"github.com/nikbrunner/pathmarks/internal/importer"
	"github.com/nikbrunner/pathmarks/internal/model"
	"github.com/nikbrunner/pathmarks/internal/picker"
	"github.com/nikbrunner/pathmarks/internal/search"
	"github.com/nikbrunner/pathmarks/internal/session"
)

var (
	errNoBookmark     = errors.New("no such bookmark")
	errOutsideProject = errors.New("path is outside the project")
	errNotFound       = errors.New("bookmarked path not found")
)

func (c *cli) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Bookmark project paths",
		Long: `Adds paths to the end of the list. Paths already bookmarked are skipped.
Absolute paths must be inside the project root.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added, skipped int
			err := c.update(func(s *session.Session) error {
				for _, arg := range args {
					p, err := projectArg(c.projectDir, arg)
					if err != nil {
						return err
					}
					ok, err := s.Add(p)
					if err != nil {
						return err
					}
					if ok {
						added++
					} else {
						skipped++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d bookmarks", added)
			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d already bookmarked)", skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index|path>",
		Short: "Remove a bookmark",
		Long:  `Removes a bookmark by its 1-based position (as shown by ls) or by its path.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed string
			err := c.update(func(s *session.Session) error {
				i, err := resolveTarget(s, c.projectDir, args[0])
				if err != nil {
					return err
				}
				removed = s.Bookmarks()[i].Path
				return s.Remove(i)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed)
			return nil
		},
	}
}

func (c *cli) colorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <index|path> <color>",
		Short: "Set the color tag of a bookmark",
		Long: `Sets the color tag of a bookmark. Colors are "#rrggbb", "#rgb" or "r,g,b".
"white" clears the tag.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := model.ParseColor(args[1])
			if err != nil {
				return err
			}

			var target string
			err = c.update(func(s *session.Session) error {
				i, err := resolveTarget(s, c.projectDir, args[0])
				if err != nil {
					return err
				}
				target = s.Bookmarks()[i].Path
				return s.Recolor(i, color)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.Hex(), target)
			return nil
		},
	}
}

func (c *cli) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.view(func(s *session.Session) error {
				out := cmd.OutOrStdout()
				bookmarks := s.Bookmarks()
				if len(bookmarks) == 0 {
					fmt.Fprintln(out, "No bookmarks")
					return nil
				}
				for i, b := range bookmarks {
					fmt.Fprintf(out, "%3d  %s  %s\n", i+1, b.Color.Hex(), b.Path)
				}
				return nil
			})
		},
	}
}

func (c *cli) jumpCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "jump <query>",
		Short: "Fuzzy find a bookmark and print its location",
		Long: `Searches bookmark paths for query. A single match is used directly; several
matches open a picker. The absolute path of the bookmarked asset is printed,
so the command composes with the shell:

  cd "$(pathmarks jump scenes)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			return c.view(func(s *session.Session) error {
				results := search.FuzzySearchBookmarks(s.Bookmarks(), query)
				if len(results) == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "No bookmarks found for '%s'\n", query)
					return nil
				}

				selected := &results[0].Bookmark
				if len(results) > 1 {
					p := picker.New(results, query)
					finalModel, err := tea.NewProgram(p, tea.WithOutput(cmd.ErrOrStderr())).Run()
					if err != nil {
						return fmt.Errorf("running picker: %w", err)
					}
					finalPicker := finalModel.(picker.Picker)
					if finalPicker.Cancelled() {
						return nil
					}
					selected = finalPicker.SelectedBookmark()
				}
				if selected == nil {
					return nil
				}

				target, err := jumpTarget(assets.NewFSIndex(os.DirFS(c.projectDir)), selected.Path)
				if err != nil {
					return err
				}
				abs := filepath.Join(c.projectDir, filepath.FromSlash(target))
				c.logger.Debug("jump", zap.String("query", query), zap.String("target", abs))

				fmt.Fprintln(cmd.OutOrStdout(), abs)
				if open {
					browser.Stdout = cmd.ErrOrStderr()
					if err := browser.OpenFile(abs); err != nil {
						return fmt.Errorf("opening %s: %w", abs, err)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&open, "open", "o", false, "open the asset with the system handler")
	return cmd
}

func (c *cli) checkCmd() *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find bookmarks whose path no longer exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var missing []culler.Result
			err := c.update(func(s *session.Session) error {
				idx := assets.NewFSIndex(os.DirFS(c.projectDir))
				results, err := culler.CheckPaths(cmd.Context(), s.Bookmarks(), idx, c.config.CheckConcurrency,
					func(completed, total int) {
						c.logger.Debug("checked", zap.Int("completed", completed), zap.Int("total", total))
					})
				if err != nil {
					return err
				}

				for _, r := range results {
					if r.Status == culler.Failed {
						fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", r.Bookmark.Path, r.Err)
					}
				}

				missing = culler.MissingResults(results)
				if !prune {
					return nil
				}
				// Highest index first so earlier positions stay valid.
				sort.Slice(missing, func(i, j int) bool { return missing[i].Index > missing[j].Index })
				for _, r := range missing {
					if err := s.Remove(r.Index); err != nil {
						return err
					}
				}
				sort.Slice(missing, func(i, j int) bool { return missing[i].Index < missing[j].Index })
				return nil
			})
			if err != nil {
				return err
			}

			if len(missing) == 0 {
				fmt.Fprintln(out, "All bookmarks exist")
				return nil
			}
			for _, r := range missing {
				fmt.Fprintf(out, "%3d  %s\n", r.Index+1, r.Bookmark.Path)
			}
			if prune {
				fmt.Fprintf(out, "Removed %d missing bookmarks\n", len(missing))
			} else {
				fmt.Fprintf(out, "%d missing bookmarks (run with --prune to remove)\n", len(missing))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "remove missing bookmarks")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from Netscape bookmark HTML",
		Long: `Imports file:// links that point inside the project. Folders are flattened,
COLOR attributes become color tags and paths already bookmarked are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer file.Close()

			parsed, err := importer.ParseHTMLBookmarks(file, c.projectDir)
			if err != nil {
				return fmt.Errorf("parsing HTML: %w", err)
			}

			var added, duplicates int
			err = c.update(func(s *session.Session) error {
				for _, b := range parsed.Bookmarks {
					ok, err := s.Add(b.Path)
					if err != nil {
						return err
					}
					if !ok {
						duplicates++
						continue
					}
					added++
					if b.Tagged() {
						if err := s.Recolor(s.Len()-1, b.Color); err != nil {
							return err
						}
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d bookmarks", added)
			if duplicates > 0 {
				fmt.Fprintf(out, " (%d duplicates skipped)", duplicates)
			}
			if parsed.Skipped > 0 {
				fmt.Fprintf(out, " (%d links outside the project skipped)", parsed.Skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.html]",
		Short: "Export bookmarks to Netscape bookmark HTML",
		Long:  `Writes the list as file:// links. The default file is pathmarks-export-YYYY-MM-DD.html in the project root.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath := exporter.DefaultExportPath(c.projectDir)
			if len(args) == 1 {
				outputPath = args[0]
			}

			return c.view(func(s *session.Session) error {
				bookmarks := s.Bookmarks()
				html := exporter.ExportHTML(bookmarks, c.projectDir)
				if err := atomic.WriteFile(outputPath, strings.NewReader(html)); err != nil {
					return fmt.Errorf("writing file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", len(bookmarks), outputPath)
				return nil
			})
		},
	}
}

// projectArg turns a command line path into a project-relative bookmark path.
func projectArg(projectRoot, arg string) (string, error) {
	p := arg
	if filepath.IsAbs(arg) {
		rel, err := filepath.Rel(projectRoot, arg)
		if err != nil {
			return "", fmt.Errorf("%w: %s", errOutsideProject, arg)
		}
		p = rel
	}
	p = assets.Normalize(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %s", errOutsideProject, arg)
	}
	return p, nil
}

// resolveTarget finds a bookmark by 1-based position or by path.
// A number is always taken as a position.
func resolveTarget(s *session.Session, projectRoot, arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > s.Len() {
			return 0, fmt.Errorf("%w: position %d (have %d)", errNoBookmark, n, s.Len())
		}
		return n - 1, nil
	}

	if i := s.IndexOf(arg); i >= 0 {
		return i, nil
	}
	if p, err := projectArg(projectRoot, arg); err == nil {
		if i := s.IndexOf(p); i >= 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", errNoBookmark, arg)
}

// jumpTarget resolves a bookmark to the project path the jump lands on.
// Directories resolve to themselves rather than their first asset.
func jumpTarget(idx assets.Index, bookmark string) (string, error) {
	h, ok := assets.Resolve(idx, bookmark)
	if !ok {
		return "", fmt.Errorf("%w: %s", errNotFound, bookmark)
	}
	if p := assets.Normalize(bookmark); assets.Dir(h) == p {
		return p, nil
	}
	return h.Path, nil
}
