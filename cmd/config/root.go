package config

import (
	"github.com/spf13/cobra"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the sprint stats configuration file",
	Long:  `Commands for inspecting and editing a sprint stats config file (JSON or YAML).`,
}
