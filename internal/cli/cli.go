package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/riverplot/pkg/buildinfo"
	"github.com/matzehuels/riverplot/pkg/observability"
	"github.com/matzehuels/riverplot/pkg/pipeline"
	"github.com/matzehuels/riverplot/pkg/plot"
	"github.com/matzehuels/riverplot/pkg/rivers"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "riverplot"

	// themeFile is the theme file name looked up in the config directory.
	themeFile = "theme.toml"
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

	// logOut is where the logger writes outside the explore screen.
	logOut io.Writer

	// Persistent flags
	dataPath  string
	themePath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Riverplot charts the world's rivers by length and discharge",
		Long:         `Riverplot draws a scatterplot of river length against discharge rank and shows the details of the river under the pointer, as image snapshots or live in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := newLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetViewportHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.dataPath, "data", "d", "", "river CSV file (default: embedded table)")
	root.PersistentFlags().StringVar(&c.themePath, "theme", "", "theme TOML file (default: $XDG_CONFIG_HOME/riverplot/theme.toml if present)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// baseOptions returns pipeline options carrying the persistent flags.
func (c *CLI) baseOptions() (pipeline.Options, error) {
	theme, err := c.loadTheme()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Data: c.dataPath, Theme: theme, Logger: c.Logger}, nil
}

// loadDataset reads the --data file or the embedded table.
func (c *CLI) loadDataset() (*rivers.Dataset, error) {
	if c.dataPath == "" {
		return rivers.Default()
	}
	return rivers.LoadFile(c.dataPath)
}

// loadTheme reads the --theme file, falling back to the config directory.
// It returns nil when no theme file is configured or present.
func (c *CLI) loadTheme() (*plot.Theme, error) {
	path := c.themePath
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, nil
		}
		path = filepath.Join(dir, themeFile)
		if _, err := os.Stat(path); err != nil {
			return nil, nil
		}
	}
	t, err := plot.LoadTheme(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded theme", "path", path)
	return &t, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/riverplot/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// parsePointer parses the --pointer flag; an empty value means no pointer.
func parsePointer(s string) (*pipeline.Point, error) {
	if s == "" {
		return nil, nil
	}
	p, err := pipeline.ParsePoint(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
