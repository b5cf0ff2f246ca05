package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Josh-Willhite/jira-sprint-stats/internal/stats"
)

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Inspect sprints",
	Long:  `Commands for inspecting the sprints named in the config file.`,
}

var sprintTotalsCmd = &cobra.Command{
	Use:   "totals CONFIG_FILE",
	Short: "Print total tickets and points per sprint",
	Long:  `Prints, for every configured sprint, the number of issues in it and the sum of their story points.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := loadClient(args[0], appLog)
		if err != nil {
			return err
		}

		totals := make([]sprintTotal, 0, len(cfg.Sprints))
		for _, sprint := range cfg.Sprints {
			agg := stats.NewSprintAggregator(client, sprint, cfg.PointsField)
			tickets, err := agg.TotalIssueCount(cmd.Context())
			if err != nil {
				return err
			}
			points, err := agg.TotalPoints(cmd.Context())
			if err != nil {
				return err
			}
			totals = append(totals, sprintTotal{Sprint: sprint, Tickets: tickets, Points: points})
		}
		printSprintTotals(os.Stdout, totals)
		return nil
	},
}

type sprintTotal struct {
	Sprint  string
	Tickets int
	Points  float64
}

// printSprintTotals prints sprint totals in a formatted table.
func printSprintTotals(out io.Writer, totals []sprintTotal) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPRINT\tTICKETS\tPOINTS")
	for _, t := range totals {
		fmt.Fprintf(w, "%s\t%d\t%g\n", t.Sprint, t.Tickets, t.Points)
	}
	w.Flush()
}

func init() {
	sprintCmd.AddCommand(sprintTotalsCmd)
}
