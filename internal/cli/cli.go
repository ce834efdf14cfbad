// Package cli implements the scrambler command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scrambler/pkg/buildinfo"
	"github.com/matzehuels/scrambler/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "scrambler"

	// logFileName is written under the state directory while the control
	// panel owns the terminal.
	logFileName = "scrambler.log"
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

	// configPath overrides the XDG config location when set via --config.
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
		Use:   appName,
		Short: "Scrambler shuffles a live video feed into a moving mosaic",
		Long: `Scrambler captures a live video feed, cuts every frame into a grid of blocks,
shuffles the blocks on a timer and optionally jitters their colors.

Grid size, shuffle interval and color shift can be changed while it runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/scrambler/config.toml)")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file selected by --config or the XDG default.
func (c *CLI) loadConfig() (config.Config, string, error) {
	path := c.configPath
	if path == "" {
		p, err := config.DefaultPath(appName)
		if err != nil {
			return config.Default(), "", nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

// =============================================================================
// Paths
// =============================================================================

// stateDir returns the state directory using XDG standard (~/.local/state/scrambler/).
func stateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", appName), nil
}
