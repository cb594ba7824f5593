package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nikbrunner/pathmarks/internal/session"
	"github.com/nikbrunner/pathmarks/internal/storage"
)

// cli holds the global flags and what PersistentPreRunE builds from them.
type cli struct {
	projectDir string
	file       string
	configPath string
	verbose    bool

	config *storage.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "pathmarks",
		Short: "Color-tagged bookmarks for project assets",
		Long: `pathmarks keeps an ordered list of bookmarked project paths, each with an
optional color tag, in a plain text file next to the project.

Run without arguments to open the interactive panel.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: c.runTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.projectDir, "project", "p", "", "project root (default: current directory)")
	flags.StringVarP(&c.file, "file", "f", "", "bookmarks file, overrides storageFile from the config")
	flags.StringVar(&c.configPath, "config", "", "config file (default: ~/.config/pathmarks/config.json)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		c.addCmd(),
		c.rmCmd(),
		c.colorCmd(),
		c.lsCmd(),
		c.jumpCmd(),
		c.checkCmd(),
		c.importCmd(),
		c.exportCmd(),
	)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	root := c.projectDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("invalid project root: %w", err)
	}
	c.projectDir = root

	configPath := c.configPath
	if configPath == "" {
		configPath, err = storage.DefaultConfigFilePath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	c.config, err = storage.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c.logger, err = newLogger(c.config.LogFile, c.verbose, cmd == cmd.Root())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// newLogger builds the process logger. The panel owns the terminal, so it
// only logs when a log file is configured.
func newLogger(logFile string, verbose, interactive bool) (*zap.Logger, error) {
	if interactive && logFile == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
	}
	return config.Build()
}

func (c *cli) location() string {
	return c.config.Location(c.projectDir, c.file)
}

// openSession opens the bookmark list. Unlike the panel, commands refuse to
// run against a list that did not load.
func (c *cli) openSession() (*session.Session, error) {
	s, err := session.Open(session.Params{
		Location: c.location(),
		Logger:   c.logger,
	})
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// update runs fn against the loaded list and saves the result.
func (c *cli) update(fn func(s *session.Session) error) error {
	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := fn(s); err != nil {
		return err
	}
	return s.Flush()
}

// view runs fn against the loaded list without saving.
func (c *cli) view(fn func(s *session.Session) error) error {
	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
