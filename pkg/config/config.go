// Package config loads the classdeck deployment configuration.
//
// The configuration names the external inputs of a run: the roster
// file, the prioritized photo directories, the branding logo, the two
// fonts, and the output path. Canvas proportions and colors are fixed
// constants of the slide layout and are deliberately not configurable.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/classdeck/classdeck/pkg/errors"
)

// Config is the parsed classdeck.toml.
type Config struct {
	Roster string `toml:"roster"` // tab-delimited roster file
	Output string `toml:"output"` // output PDF path

	Photos   Photos   `toml:"photos"`
	Branding Branding `toml:"branding"`
	Fonts    Fonts    `toml:"fonts"`
}

// Photos configures the portrait sources.
type Photos struct {
	// BaseDir is the directory containing the priority subdirectories.
	BaseDir string `toml:"base_dir"`

	// Priority lists subdirectories of BaseDir in priority order.
	// A photo found in an earlier directory shadows the same student's
	// photo in any later directory.
	Priority []string `toml:"priority"`

	// CacheDir holds resized portraits. Safe to delete at any time.
	CacheDir string `toml:"cache_dir"`
}

// Branding configures the school branding assets.
type Branding struct {
	Logo string `toml:"logo"` // logo image, composited twice per slide
}

// Fonts configures the two typefaces.
type Fonts struct {
	Name   string `toml:"name"`   // student name typeface
	Awards string `toml:"awards"` // achievement list typeface
}

// Default returns a configuration with conventional paths, matching the
// layout of a typical deployment directory.
func Default() *Config {
	return &Config{
		Roster: "data/roster.tsv",
		Output: "slideshow.pdf",
		Photos: Photos{
			BaseDir:  "images",
			Priority: []string{"RETAKES", "GRAD_PHOTOS", "EXTRAS"},
			CacheDir: filepath.Join("images", "cache"),
		},
		Branding: Branding{Logo: filepath.Join("images", "school_logo.png")},
		Fonts: Fonts{
			Name:   filepath.Join("fonts", "Cambo-Regular.ttf"),
			Awards: filepath.Join("fonts", "ArialTh.ttf"),
		},
	}
}

// Load reads and validates a TOML configuration file.
// Omitted fields keep their Default() values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch {
	case c.Roster == "":
		return errors.New(errors.ErrCodeInvalidConfig, "roster path is required")
	case c.Output == "":
		return errors.New(errors.ErrCodeInvalidConfig, "output path is required")
	case c.Photos.BaseDir == "":
		return errors.New(errors.ErrCodeInvalidConfig, "photos.base_dir is required")
	case len(c.Photos.Priority) == 0:
		return errors.New(errors.ErrCodeInvalidConfig, "photos.priority must list at least one directory")
	case c.Branding.Logo == "":
		return errors.New(errors.ErrCodeInvalidConfig, "branding.logo is required")
	case c.Fonts.Name == "":
		return errors.New(errors.ErrCodeInvalidConfig, "fonts.name is required")
	case c.Fonts.Awards == "":
		return errors.New(errors.ErrCodeInvalidConfig, "fonts.awards is required")
	}
	return nil
}

// PhotoDirs returns the priority subdirectories joined to the base dir,
// highest priority first.
func (c *Config) PhotoDirs() []string {
	dirs := make([]string, len(c.Photos.Priority))
	for i, sub := range c.Photos.Priority {
		dirs[i] = filepath.Join(c.Photos.BaseDir, sub)
	}
	return dirs
}
