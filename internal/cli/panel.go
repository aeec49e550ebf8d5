package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/devpanel/internal/command"
	"github.com/Dicklesworthstone/devpanel/internal/config"
	"github.com/Dicklesworthstone/devpanel/internal/panel"
	"github.com/Dicklesworthstone/devpanel/internal/tmux"
	"github.com/Dicklesworthstone/devpanel/internal/workspace"
)

var (
	panelRoot        string
	panelSession     string
	panelCommandPane string
)

// panelCmd runs the status panel TUI. It is what the launcher
// respawns inside the status pane; users do not normally invoke it.
var panelCmd = &cobra.Command{
	Use:    "panel",
	Short:  "Run the status panel (internal; started inside the status pane)",
	Hidden: true,
	RunE:   runPanel,
}

func init() {
	panelCmd.Flags().StringVar(&panelRoot, "root", "", "root path for the directory tree")
	panelCmd.Flags().StringVar(&panelSession, "session", "", "workspace session name")
	panelCmd.Flags().StringVar(&panelCommandPane, "command-pane", "", "pane id receiving dispatched commands")
	rootCmd.AddCommand(panelCmd)
}

func runPanel(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(panelRoot)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile, root)
	if err != nil {
		return err
	}

	client := tmux.NewClient()
	router := command.NewRouter(client, panelCommandPane, commandPaneResolver(client, panelSession))

	m := panel.New(panel.Options{
		Root:            root,
		Dispatcher:      router,
		EditorOverride:  cfg.Editor,
		MetricsInterval: secondsOrDefault(cfg.MetricsIntervalSec, 1),
		TreeInterval:    secondsOrDefault(cfg.TreeIntervalSec, 3),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("panel: %w", err)
	}
	return nil
}

// commandPaneResolver re-derives the command pane handle from the
// live topology. Used when a dispatch hits a stale pane id (the pane
// was killed and recreated outside our control).
func commandPaneResolver(client *tmux.Client, session string) func() (string, error) {
	if session == "" {
		return nil
	}
	return func() (string, error) {
		panes, err := client.ListPanes(session)
		if err != nil {
			return "", err
		}
		topo := workspace.BuildPlan(panes, workspace.LayoutOptions{}).Existing
		if topo.Command == "" {
			return "", fmt.Errorf("session %s has no command pane", session)
		}
		return topo.Command, nil
	}
}

func secondsOrDefault(s, def int) time.Duration {
	if s <= 0 {
		s = def
	}
	return time.Duration(s) * time.Second
}
