package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Josh-Willhite/jira-sprint-stats/cmd/config"
	"github.com/Josh-Willhite/jira-sprint-stats/internal/logger"
	"github.com/Josh-Willhite/jira-sprint-stats/internal/report"
	"github.com/Josh-Willhite/jira-sprint-stats/internal/stats"
)

var (
	verbose    bool
	logFormat  string
	outputPath string

	appLog = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "jira-sprint-stats CONFIG_FILE",
	Short: "Chart per-user sprint metrics from Jira",
	Long: `jira-sprint-stats queries Jira for every sprint listed in CONFIG_FILE and draws two
bar charts into one image: story points completed and tickets created, per user.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		appLog = logger.New(logger.Options{Verbose: verbose, JSON: logFormat == "json"})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.Context(), appLog, args[0], outputPath)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runReport collects every sprint before drawing, so a failed query
// leaves no image behind.
func runReport(ctx context.Context, log zerolog.Logger, configPath, output string) error {
	cfg, client, err := loadClient(configPath, log)
	if err != nil {
		return err
	}

	rows, err := stats.NewSeriesBuilder(client, cfg.PointsField, log).Build(ctx, cfg.Sprints, cfg.Users)
	if err != nil {
		return err
	}

	points, tickets := report.Pivot(rows, cfg.Users)
	if err := report.Render(output, points, tickets); err != nil {
		return err
	}
	log.Info().Str("file", output).Int("sprints", len(rows)).Msg("report written")
	return nil
}

func init() {
	rootCmd.AddCommand(config.ConfigCmd)
	rootCmd.AddCommand(sprintCmd)
	rootCmd.AddCommand(listCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every tracker query")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", report.DefaultFile, "Image file to write")
}
