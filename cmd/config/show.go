package config

import (
	"github.com/spf13/cobra"

	"github.com/Josh-Willhite/jira-sprint-stats/internal/config"
)

var showCmd = &cobra.Command{
	Use:   "show CONFIG_FILE",
	Short: "Show the configuration (hiding the password)",
	Long:  `Displays the effective configuration, masking the password.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}
		config.PrintMasked(cfg)
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(showCmd)
}
