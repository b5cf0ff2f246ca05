package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Josh-Willhite/jira-sprint-stats/internal/jira"
	"github.com/Josh-Willhite/jira-sprint-stats/internal/stats"
)

var listCmd = &cobra.Command{
	Use:   "list CONFIG_FILE",
	Short: "List the issues of one sprint with their points",
	Long: `List issues in a sprint, optionally narrowed to the tickets a user created or the
resolved tickets a user handed off. These are the same queries the report counts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := loadClient(args[0], appLog)
		if err != nil {
			return err
		}

		sprint, _ := cmd.Flags().GetString("sprint")
		creator, _ := cmd.Flags().GetString("creator")
		completedBy, _ := cmd.Flags().GetString("completed-by")

		if sprint == "" {
			if len(cfg.Sprints) == 0 {
				return fmt.Errorf("no sprint given and none configured; use --sprint")
			}
			sprint = cfg.Sprints[len(cfg.Sprints)-1]
		}

		var q *jira.Query
		switch {
		case creator != "" && completedBy != "":
			return fmt.Errorf("--creator and --completed-by are mutually exclusive")
		case creator != "":
			q = stats.CreatedByQuery(sprint, creator)
		case completedBy != "":
			q = stats.CompletedByQuery(sprint, completedBy)
		default:
			q = jira.NewQuery().Eq("sprint", sprint)
		}

		issues, err := client.Search(cmd.Context(), q)
		if err != nil {
			return err
		}
		total, err := stats.SumPoints(issues, cfg.PointsField)
		if err != nil {
			return err
		}
		printIssues(os.Stdout, issues, cfg.PointsField, total)
		return nil
	},
}

// printIssues prints issues in a formatted table followed by the points total.
func printIssues(out io.Writer, issues []jira.Issue, pointsField string, total float64) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tPOINTS")
	for _, iss := range issues {
		pts := "N/A"
		if raw := iss.Fields[pointsField]; raw != nil {
			if v, err := stats.Points(raw); err == nil {
				pts = fmt.Sprintf("%g", v)
			}
		}
		fmt.Fprintf(w, "%s\t%s\n", iss.Key, pts)
	}
	fmt.Fprintf(w, "TOTAL (%d issues)\t%g\n", len(issues), total)
	w.Flush()
}

func init() {
	listCmd.Flags().StringP("sprint", "s", "", "Sprint to list (defaults to the last configured sprint)")
	listCmd.Flags().StringP("creator", "c", "", "Only tickets created by this user")
	listCmd.Flags().StringP("completed-by", "a", "", "Only resolved tickets whose assignee changed from this user")
}
