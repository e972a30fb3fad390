package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/classdeck/classdeck/pkg/cache"
	"github.com/classdeck/classdeck/pkg/config"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}

	want := []string{"render", "check", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)

	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("log level = %v, want debug", got)
	}
}

func TestLoadConfigImplicitDefault(t *testing.T) {
	// The implicit config file does not exist: built-in defaults apply.
	cfg, err := loadConfig(filepath.Join(t.TempDir(), defaultConfigFile), false)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Roster != config.Default().Roster {
		t.Errorf("Roster = %q, want default %q", cfg.Roster, config.Default().Roster)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	// An explicitly named config file must exist.
	_, err := loadConfig(filepath.Join(t.TempDir(), "given.toml"), true)
	if err == nil {
		t.Error("loadConfig: err = nil, want error for missing explicit config")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), defaultConfigFile)
	if err := os.WriteFile(path, []byte("roster = \"class2026.tsv\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Roster != "class2026.tsv" {
		t.Errorf("Roster = %q, want class2026.tsv", cfg.Roster)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := config.Default()
	opts := pipelineOptions(cfg)

	if opts.RosterPath != cfg.Roster {
		t.Errorf("RosterPath = %q, want %q", opts.RosterPath, cfg.Roster)
	}
	if opts.OutputPath != cfg.Output {
		t.Errorf("OutputPath = %q, want %q", opts.OutputPath, cfg.Output)
	}
	if len(opts.PhotoDirs) != len(cfg.Photos.Priority) {
		t.Errorf("PhotoDirs = %v, want one per priority entry", opts.PhotoDirs)
	}
}

func TestNewCache(t *testing.T) {
	cfg := config.Default()
	cfg.Photos.CacheDir = filepath.Join(t.TempDir(), "cache")

	c := newCache(cfg, false)
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("newCache = %T, want *cache.FileCache", c)
	}

	if _, ok := newCache(cfg, true).(*cache.NullCache); !ok {
		t.Error("newCache with noCache should return a NullCache")
	}
}
