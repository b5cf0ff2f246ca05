package stats

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// SprintRow holds one sprint's per-user metrics. Both maps carry an
// entry for every configured user.
type SprintRow struct {
	Sprint          string
	PointsCompleted map[string]float64
	TicketsCreated  map[string]int
}

// PointsCompletedColumn names the completed-points column for user.
func PointsCompletedColumn(user string) string {
	return fmt.Sprintf("points_completed(%s)", user)
}

// TicketsCreatedColumn names the created-tickets column for user.
func TicketsCreatedColumn(user string) string {
	return fmt.Sprintf("tickets_created(%s)", user)
}

// Columns flattens the row into named value columns, two per user.
func (r SprintRow) Columns() map[string]float64 {
	out := make(map[string]float64, len(r.PointsCompleted)+len(r.TicketsCreated))
	for user, v := range r.PointsCompleted {
		out[PointsCompletedColumn(user)] = v
	}
	for user, v := range r.TicketsCreated {
		out[TicketsCreatedColumn(user)] = float64(v)
	}
	return out
}

// SeriesBuilder walks the configured sprints in order and collects one
// SprintRow per sprint.
type SeriesBuilder struct {
	client      IssueSearcher
	pointsField string
	log         zerolog.Logger
}

// NewSeriesBuilder returns a builder that queries client.
func NewSeriesBuilder(client IssueSearcher, pointsField string, log zerolog.Logger) *SeriesBuilder {
	return &SeriesBuilder{client: client, pointsField: pointsField, log: log}
}

// Build returns rows in sprint order. The first failed query aborts the
// whole series; no partial result is returned.
func (b *SeriesBuilder) Build(ctx context.Context, sprints, users []string) ([]SprintRow, error) {
	rows := make([]SprintRow, 0, len(sprints))
	for _, sprint := range sprints {
		row, err := b.buildRow(ctx, sprint, users)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (b *SeriesBuilder) buildRow(ctx context.Context, sprint string, users []string) (SprintRow, error) {
	agg := NewSprintAggregator(b.client, sprint, b.pointsField)
	row := SprintRow{
		Sprint:          sprint,
		PointsCompleted: make(map[string]float64, len(users)),
		TicketsCreated:  make(map[string]int, len(users)),
	}
	for _, user := range users {
		pts, err := agg.PointsCompletedBy(ctx, user)
		if err != nil {
			return SprintRow{}, err
		}
		created, err := agg.TicketsCreatedBy(ctx, user)
		if err != nil {
			return SprintRow{}, err
		}
		row.PointsCompleted[user] = pts
		row.TicketsCreated[user] = created
	}
	b.log.Info().Str("sprint", sprint).Int("users", len(users)).Msg("sprint collected")
	return row, nil
}
