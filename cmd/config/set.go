package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Josh-Willhite/jira-sprint-stats/internal/config"
)

var setCmd = &cobra.Command{
	Use:   "set CONFIG_FILE [key] [value]",
	Short: "Set a configuration value (e.g., server, sprints, users)",
	Long: `Sets one key in the config file, creating the file if needed. Keys: server, user,
password, points_field, sprints, users. List keys take a comma-separated value.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, key, value := args[0], args[1], args[2]

		if err := config.SetValue(path, key, value); err != nil {
			return err
		}
		if key == "password" {
			value = config.Mask(value)
		}
		fmt.Printf("Configuration updated: %s = %s\n", key, value)
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(setCmd)
}
