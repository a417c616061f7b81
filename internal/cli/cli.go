// Package cli implements the bizcanvas command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bizcanvas/pkg/buildinfo"
	"github.com/matzehuels/bizcanvas/pkg/config"
	"github.com/matzehuels/bizcanvas/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bizcanvas"

	// pollInterval is how often the single-user viewer re-reads the canvas.
	pollInterval = 500 // milliseconds
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "bizcanvas",
		Short:        "Bizcanvas is a spatial canvas for structured thinking in the terminal",
		Long:         `Bizcanvas arranges notes on templated canvases (SWOT, Business Model Canvas, kanban and more), renders them in the terminal, and syncs shared canvases between participants in real time.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		// Attach the logger to the command context so RunE bodies and the
		// helpers they call pick it up with loggerFromContext.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/bizcanvas/config.toml)")

	// Register all subcommands
	root.AddCommand(c.templateCommand())
	root.AddCommand(c.canvasCommand())
	root.AddCommand(c.noteCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.joinCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Store Factories
// =============================================================================

// loadConfig resolves and loads the configuration.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// openStore opens the canvas database, creating the data directory on
// first use.
func (c *CLI) openStore(ctx context.Context) (*store.Store, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, cfg, err
	}

	s, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, cfg, err
	}
	loggerFromContext(ctx).Debug("opened canvas database", "path", cfg.DBPath())
	return s, cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// sessionDir returns the session directory using the XDG standard
// (~/.config/bizcanvas/sessions/).
func sessionDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "sessions"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "sessions"), nil
}
