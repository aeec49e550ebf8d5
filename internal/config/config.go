// Package config loads devpanel configuration. Precedence, lowest to
// highest: built-in defaults, the global TOML config, a per-project
// .devpanel.yaml at the workspace root, environment variables, then
// command-line flags (applied by the cli package).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the main configuration.
type Config struct {
	Session           string `toml:"session" yaml:"session"`
	Root              string `toml:"root" yaml:"root"`
	PanelWidthPercent int    `toml:"panel_width_percent" yaml:"panel_width_percent"`
	CommandHeight     int    `toml:"command_height" yaml:"command_height"`
	Editor            string `toml:"editor" yaml:"editor"` // overrides $VISUAL/$EDITOR resolution when set

	// Panel refresh intervals, seconds.
	MetricsIntervalSec int `toml:"metrics_interval_seconds" yaml:"metrics_interval_seconds"`
	TreeIntervalSec    int `toml:"tree_interval_seconds" yaml:"tree_interval_seconds"`
}

const (
	// DefaultPanelWidthPercent is the status panel's share of the
	// window width.
	DefaultPanelWidthPercent = 40
	// DefaultCommandHeight is the command pane height in cells.
	DefaultCommandHeight = 8

	minPanelWidthPercent = 20
	maxPanelWidthPercent = 70
	minCommandHeight     = 3
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Session:            "devpanel",
		PanelWidthPercent:  DefaultPanelWidthPercent,
		CommandHeight:      DefaultCommandHeight,
		MetricsIntervalSec: 1,
		TreeIntervalSec:    3,
	}
}

// Path returns the global config file location, honoring
// XDG_CONFIG_HOME.
func Path() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "devpanel", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "devpanel", "config.toml")
}

// Load reads configuration from path (or the default location when
// path is empty), layers the per-project override from rootDir, and
// applies environment variables. A missing file at any layer is not
// an error; a malformed one is.
func Load(path, rootDir string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = Path()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if rootDir != "" {
		if err := applyProject(cfg, rootDir); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	cfg.Clamp()
	return cfg, nil
}

// applyEnv applies environment overrides. PANEL_WIDTH_PERCENT is the
// historical name and still honored; the DEVPANEL_ prefixed names win
// when both are set.
func applyEnv(cfg *Config) {
	for _, key := range []string{"PANEL_WIDTH_PERCENT", "DEVPANEL_PANEL_WIDTH_PERCENT"} {
		if v := envInt(key); v > 0 {
			cfg.PanelWidthPercent = v
		}
	}
	if v := envInt("DEVPANEL_COMMAND_HEIGHT"); v > 0 {
		cfg.CommandHeight = v
	}
	if v := os.Getenv("DEVPANEL_SESSION"); v != "" {
		cfg.Session = v
	}
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

// Clamp bounds the geometry knobs to workable ranges.
func (c *Config) Clamp() {
	if c.PanelWidthPercent < minPanelWidthPercent {
		c.PanelWidthPercent = minPanelWidthPercent
	}
	if c.PanelWidthPercent > maxPanelWidthPercent {
		c.PanelWidthPercent = maxPanelWidthPercent
	}
	if c.CommandHeight < minCommandHeight {
		c.CommandHeight = minCommandHeight
	}
}
