package report

import (
	"github.com/Josh-Willhite/jira-sprint-stats/internal/stats"
)

// Table is one metric family pivoted for charting: one row per sprint,
// one column per user.
type Table struct {
	Title   string
	Sprints []string
	Users   []string
	// Values[u][s] is the value for Users[u] in Sprints[s].
	Values [][]float64
}

func newTable(title string, rows []stats.SprintRow, users []string) Table {
	t := Table{
		Title:   title,
		Sprints: make([]string, len(rows)),
		Users:   append([]string(nil), users...),
		Values:  make([][]float64, len(users)),
	}
	for i, row := range rows {
		t.Sprints[i] = row.Sprint
	}
	for u := range users {
		t.Values[u] = make([]float64, len(rows))
	}
	return t
}

// Pivot splits rows into the points-completed and tickets-created tables.
func Pivot(rows []stats.SprintRow, users []string) (points, tickets Table) {
	points = newTable("Points Completed", rows, users)
	tickets = newTable("Tickets Created", rows, users)
	for s, row := range rows {
		for u, user := range users {
			points.Values[u][s] = row.PointsCompleted[user]
			tickets.Values[u][s] = float64(row.TicketsCreated[user])
		}
	}
	return points, tickets
}
