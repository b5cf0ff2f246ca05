package config

import (
	"github.com/spf13/cobra"

	"github.com/Josh-Willhite/jira-sprint-stats/internal/config"
)

var viewCmd = &cobra.Command{
	Use:   "view CONFIG_FILE",
	Short: "View the configuration as YAML",
	Long:  `Displays the effective configuration, environment overrides included, as YAML.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}
		config.PrintRaw(cfg)
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(viewCmd) // ConfigCmd is defined in cmd/config/root.go
}
