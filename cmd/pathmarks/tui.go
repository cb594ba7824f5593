package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/pathmarks/internal/assets"
	"github.com/nikbrunner/pathmarks/internal/session"
	"github.com/nikbrunner/pathmarks/internal/tui"
	"github.com/nikbrunner/pathmarks/internal/watch"
)

// runTUI runs the interactive panel. A list that failed to load still opens
// the panel, which shows the error instead of bookmarks.
func (c *cli) runTUI(cmd *cobra.Command, args []string) error {
	palette, err := c.config.PaletteColors()
	if err != nil {
		return err
	}

	s, _ := session.Open(session.Params{
		Location: c.location(),
		Logger:   c.logger,
	})
	defer s.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var changes <-chan struct{}
	if s.State() == session.Loaded {
		w, err := watch.New(s.Location(), watch.DefaultDebounce, c.logger)
		if err != nil {
			c.logger.Warn("not watching bookmarks file", zap.Error(err))
		} else {
			defer w.Close()
			w.Start(ctx)
			changes = w.Events()
		}
	}

	app := tui.NewApp(tui.AppParams{
		Session:         s,
		Project:         assets.NewFSIndex(os.DirFS(c.projectDir)),
		LabelTrimPrefix: c.config.LabelTrimPrefix,
		Palette:         palette,
		Changes:         changes,
		Logger:          c.logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running panel: %w", err)
	}

	return s.Flush()
}
