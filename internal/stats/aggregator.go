package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Josh-Willhite/jira-sprint-stats/internal/jira"
)

// ErrMissingPointsField is returned when an issue in a result set does not
// carry the configured points field at all.
var ErrMissingPointsField = errors.New("issue has no points field")

// IssueSearcher is the slice of the tracker API the aggregator needs.
type IssueSearcher interface {
	Search(ctx context.Context, q *jira.Query) ([]jira.Issue, error)
	Count(ctx context.Context, q *jira.Query) (int, error)
}

// SprintAggregator answers per-sprint questions. Nothing is cached; every
// call queries the tracker again.
type SprintAggregator struct {
	client      IssueSearcher
	sprint      string
	pointsField string
}

// NewSprintAggregator scopes an aggregator to one sprint.
func NewSprintAggregator(client IssueSearcher, sprint, pointsField string) *SprintAggregator {
	return &SprintAggregator{client: client, sprint: sprint, pointsField: pointsField}
}

func (a *SprintAggregator) sprintQuery() *jira.Query {
	return jira.NewQuery().Eq("sprint", a.sprint)
}

// TotalIssueCount counts every issue in the sprint.
func (a *SprintAggregator) TotalIssueCount(ctx context.Context) (int, error) {
	n, err := a.client.Count(ctx, a.sprintQuery())
	if err != nil {
		return 0, fmt.Errorf("sprint %s: total issues: %w", a.sprint, err)
	}
	return n, nil
}

// TotalPoints sums the points field over every issue in the sprint.
func (a *SprintAggregator) TotalPoints(ctx context.Context) (float64, error) {
	issues, err := a.client.Search(ctx, a.sprintQuery())
	if err != nil {
		return 0, fmt.Errorf("sprint %s: total points: %w", a.sprint, err)
	}
	sum, err := SumPoints(issues, a.pointsField)
	if err != nil {
		return 0, fmt.Errorf("sprint %s: total points: %w", a.sprint, err)
	}
	return sum, nil
}

// TicketsCreatedBy counts the sprint's issues created by user.
func (a *SprintAggregator) TicketsCreatedBy(ctx context.Context, user string) (int, error) {
	n, err := a.client.Count(ctx, CreatedByQuery(a.sprint, user))
	if err != nil {
		return 0, fmt.Errorf("sprint %s: tickets created by %s: %w", a.sprint, user, err)
	}
	return n, nil
}

// PointsCompletedBy sums the points of resolved sprint issues that were
// assigned away from user. An empty result is 0.
func (a *SprintAggregator) PointsCompletedBy(ctx context.Context, user string) (float64, error) {
	issues, err := a.client.Search(ctx, CompletedByQuery(a.sprint, user))
	if err != nil {
		return 0, fmt.Errorf("sprint %s: points completed by %s: %w", a.sprint, user, err)
	}
	sum, err := SumPoints(issues, a.pointsField)
	if err != nil {
		return 0, fmt.Errorf("sprint %s: points completed by %s: %w", a.sprint, user, err)
	}
	return sum, nil
}

// CreatedByQuery matches sprint issues whose creator is user.
func CreatedByQuery(sprint, user string) *jira.Query {
	return jira.NewQuery().Eq("sprint", sprint).Eq("creator", user)
}

// CompletedByQuery matches resolved sprint issues whose assignee changed
// away from user.
func CompletedByQuery(sprint, user string) *jira.Query {
	return jira.NewQuery().
		Eq("sprint", sprint).
		ChangedFrom("assignee", user).
		Eq("status", "resolved")
}

// SumPoints adds up field across issues. A field present with a null
// value (an unestimated issue) counts as zero; a field missing from the
// issue is an error.
func SumPoints(issues []jira.Issue, field string) (float64, error) {
	var sum float64
	for _, iss := range issues {
		raw, ok := iss.Fields[field]
		if !ok {
			return 0, fmt.Errorf("%s: %q: %w", iss.Key, field, ErrMissingPointsField)
		}
		v, err := Points(raw)
		if err != nil {
			return 0, fmt.Errorf("%s: %q: %w", iss.Key, field, err)
		}
		sum += v
	}
	return sum, nil
}

// Points converts a raw points field value to a number. null is zero.
func Points(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("points value %v is not numeric", raw)
	}
}
