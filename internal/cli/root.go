// Package cli wires the devpanel commands. The root command launches
// or reconciles the workspace; the hidden panel command is what runs
// inside the status pane.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/devpanel/internal/config"
	"github.com/Dicklesworthstone/devpanel/internal/tmux"
	"github.com/Dicklesworthstone/devpanel/internal/workspace"
)

var (
	cfgFile string
	noColor bool

	flagSession       string
	flagRoot          string
	flagPanelWidth    int
	flagCommandHeight int
	flagWidth         int
	flagHeight        int
	flagNoAttach      bool

	// Build information - set by goreleaser via ldflags
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "devpanel",
	Short: "tmux workspace with a directory tree and live system metrics panel",
	Long: `devpanel opens a tmux workspace with three panes: your main work
pane on the left, a status panel on the right showing a navigable
directory tree and live CPU/memory/GPU metrics, and a command pane
below the panel. Clicking a directory in the tree changes directory in
the command pane; clicking a supported file opens it in your editor
there. Your main pane is never interrupted.

Re-running devpanel against an existing session is safe: a session
missing the command pane is upgraded in place without disturbing your
pane sizes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	RunE: runLaunch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/devpanel/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")

	rootCmd.Flags().StringVar(&flagSession, "session", "", "tmux session name (default \"devpanel\")")
	rootCmd.Flags().StringVar(&flagRoot, "root", "", "root working directory (default current directory)")
	rootCmd.Flags().IntVar(&flagPanelWidth, "panel-width-percent", 0, "status panel width as percent of the window (default 40)")
	rootCmd.Flags().IntVar(&flagCommandHeight, "panel-command-height", 0, "command pane height in cells (default 8)")
	rootCmd.Flags().IntVar(&flagWidth, "width", 0, "explicit session width for detached creation")
	rootCmd.Flags().IntVar(&flagHeight, "height", 0, "explicit session height for detached creation")
	rootCmd.Flags().BoolVar(&flagNoAttach, "no-attach", false, "create/sync the session without attaching")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runLaunch(cmd *cobra.Command, args []string) error {
	if err := tmux.EnsureInstalled(); err != nil {
		return err
	}

	root, err := resolveRoot(flagRoot)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile, root)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	if err := tmux.ValidateSessionName(cfg.Session); err != nil {
		return err
	}

	geo, err := workspace.ResolveGeometry(flagWidth, flagHeight)
	if err != nil {
		return err
	}

	client := tmux.NewClient()
	mgr := workspace.NewManager(client)

	info, err := mgr.Ensure(cfg.Session, root, geo)
	if err != nil {
		return err
	}

	topo, err := mgr.Reconcile(info, workspace.LayoutOptions{
		PanelWidthPercent: cfg.PanelWidthPercent,
		CommandHeight:     cfg.CommandHeight,
	})
	if err != nil {
		return err
	}

	// Reconciling an existing 3-pane session plans no splits, so
	// explicit geometry flags are applied as resizes instead.
	if info.State == workspace.StateThreePane {
		applyGeometryFlags(cmd, client, cfg, topo)
	}

	workspace.ConfigureInteraction(client, cfg.Session)
	workspace.ConfigureClipboard(client, cfg.Session)

	// (Re)start the panel program in the status pane. Respawn is
	// idempotent: an already-running panel is replaced, picking up
	// flag changes.
	if topo.Status != "" {
		panelCmd, err := panelCommand(cfg.Session, root, topo)
		if err != nil {
			return err
		}
		if err := client.RespawnPane(topo.Status, panelCmd); err != nil {
			return fmt.Errorf("start status panel: %w", err)
		}
	}

	_ = client.SelectPane(topo.Main)

	if flagNoAttach {
		return nil
	}
	return client.AttachOrSwitch(cfg.Session)
}

// applyGeometryFlags resizes an already-complete session to honor
// explicitly passed geometry flags. Best effort: config-only values
// never override sizes the user may have dragged to.
func applyGeometryFlags(cmd *cobra.Command, client *tmux.Client, cfg *config.Config, topo workspace.Topology) {
	width, height, err := client.WindowSize(topo.Main)
	if err != nil {
		return
	}
	if cmd.Flags().Changed("panel-width-percent") {
		mainWidth := width * (100 - cfg.PanelWidthPercent) / 100
		_ = workspace.ResizeMain(client, topo, width, mainWidth)
	}
	if cmd.Flags().Changed("panel-command-height") {
		_ = workspace.SetCommandHeight(client, topo, height, cfg.CommandHeight)
	}
}

// applyFlags layers explicit flag values over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagSession != "" {
		cfg.Session = flagSession
	}
	if cmd.Flags().Changed("panel-width-percent") {
		cfg.PanelWidthPercent = flagPanelWidth
	}
	if cmd.Flags().Changed("panel-command-height") {
		cfg.CommandHeight = flagCommandHeight
	}
	cfg.Clamp()
}

func resolveRoot(flag string) (string, error) {
	root := flag
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = cwd
	}
	if root[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			root = filepath.Join(home, root[1:])
		}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	st, err := os.Stat(abs)
	if err != nil || !st.IsDir() {
		return "", fmt.Errorf("root directory not found: %s", abs)
	}
	return abs, nil
}

// panelCommand builds the shell command respawned into the status
// pane: this binary's panel subcommand pointed at the command pane.
// The config path is forwarded so the panel loads the same file as
// the launcher.
func panelCommand(session, root string, topo workspace.Topology) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate devpanel binary: %w", err)
	}
	args := []string{exe, "panel",
		"--session", session,
		"--root", root,
		"--command-pane", topo.Command,
	}
	if cfgFile != "" {
		args = append(args, "--config", cfgFile)
	}
	return shellquote.Join(args...), nil
}
