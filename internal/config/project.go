package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the per-project override file looked up at the
// workspace root.
const ProjectFile = ".devpanel.yaml"

// projectOverride mirrors Config but with pointer fields so only keys
// present in the file override the lower layers.
type projectOverride struct {
	Session            *string `yaml:"session"`
	PanelWidthPercent  *int    `yaml:"panel_width_percent"`
	CommandHeight      *int    `yaml:"command_height"`
	Editor             *string `yaml:"editor"`
	MetricsIntervalSec *int    `yaml:"metrics_interval_seconds"`
	TreeIntervalSec    *int    `yaml:"tree_interval_seconds"`
}

// applyProject layers .devpanel.yaml from rootDir over cfg. A missing
// file is fine; a malformed one is an error the user should see.
func applyProject(cfg *Config, rootDir string) error {
	path := filepath.Join(rootDir, ProjectFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("project config %s: %w", path, err)
	}

	var o projectOverride
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("project config %s: %w", path, err)
	}

	if o.Session != nil {
		cfg.Session = *o.Session
	}
	if o.PanelWidthPercent != nil {
		cfg.PanelWidthPercent = *o.PanelWidthPercent
	}
	if o.CommandHeight != nil {
		cfg.CommandHeight = *o.CommandHeight
	}
	if o.Editor != nil {
		cfg.Editor = *o.Editor
	}
	if o.MetricsIntervalSec != nil {
		cfg.MetricsIntervalSec = *o.MetricsIntervalSec
	}
	if o.TreeIntervalSec != nil {
		cfg.TreeIntervalSec = *o.TreeIntervalSec
	}
	return nil
}
