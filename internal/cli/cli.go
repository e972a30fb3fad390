// Package cli implements the classdeck command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/classdeck/classdeck/pkg/buildinfo"
	"github.com/classdeck/classdeck/pkg/cache"
	"github.com/classdeck/classdeck/pkg/config"
	"github.com/classdeck/classdeck/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "classdeck"

	// defaultConfigFile is the configuration file looked up in the
	// working directory when --config is not given.
	defaultConfigFile = "classdeck.toml"
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
		Use:          appName,
		Short:        "Classdeck renders graduation slideshows from a student roster",
		Long:         `Classdeck is a CLI tool that turns a tab-delimited student roster, a directory of portrait photos, and school branding assets into a finished slideshow PDF with one slide per graduating student.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg *config.Config, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(newCache(cfg, noCache), c.Logger)
}

// newCache opens the portrait cache configured in cfg. Any failure to
// open it degrades to a NullCache; caching is an optimization, never a
// requirement.
func newCache(cfg *config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Photos.CacheDir == "" {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(cfg.Photos.CacheDir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the configuration file at path. When the path is the
// implicit default and the file does not exist, built-in defaults are
// used; an explicitly given path must exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// pipelineOptions maps the configuration onto pipeline options.
func pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		RosterPath:    cfg.Roster,
		PhotoDirs:     cfg.PhotoDirs(),
		LogoPath:      cfg.Branding.Logo,
		NameFontPath:  cfg.Fonts.Name,
		AwardFontPath: cfg.Fonts.Awards,
		OutputPath:    cfg.Output,
	}
}
