package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/devpanel/internal/config"
	"github.com/Dicklesworthstone/devpanel/internal/tmux"
)

var killCmd = &cobra.Command{
	Use:   "kill [session]",
	Short: "Kill a devpanel workspace session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tmux.EnsureInstalled(); err != nil {
			return err
		}

		name := ""
		if len(args) > 0 {
			name = args[0]
		} else {
			cfg, err := config.Load(cfgFile, "")
			if err != nil {
				return err
			}
			name = cfg.Session
		}

		client := tmux.NewClient()
		if !client.SessionExists(name) {
			return fmt.Errorf("session '%s' not found", name)
		}
		if err := client.KillSession(name); err != nil {
			return err
		}
		fmt.Printf("Killed session '%s'\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(killCmd)
}
