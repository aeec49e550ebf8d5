package cli

import (
	"strings"
	"testing"

	"github.com/Dicklesworthstone/devpanel/internal/workspace"
)

func TestPanelCommandForwardsConfigPath(t *testing.T) {
	defer func(prev string) { cfgFile = prev }(cfgFile)
	cfgFile = "/tmp/alt config.toml"

	topo := workspace.Topology{Main: "%0", Status: "%1", Command: "%2"}
	cmd, err := panelCommand("ws1", "/tmp/proj", topo)
	if err != nil {
		t.Fatalf("panelCommand: %v", err)
	}

	if !strings.Contains(cmd, "--config '/tmp/alt config.toml'") {
		t.Errorf("config path not forwarded (or unquoted): %s", cmd)
	}
	if !strings.Contains(cmd, "--command-pane %2") {
		t.Errorf("command pane missing: %s", cmd)
	}
}

func TestPanelCommandOmitsConfigWhenUnset(t *testing.T) {
	defer func(prev string) { cfgFile = prev }(cfgFile)
	cfgFile = ""

	cmd, err := panelCommand("ws1", "/tmp/proj", workspace.Topology{Command: "%2"})
	if err != nil {
		t.Fatalf("panelCommand: %v", err)
	}
	if strings.Contains(cmd, "--config") {
		t.Errorf("unexpected --config flag: %s", cmd)
	}
}
