package jira

import (
	"context"
	"fmt"
	"net/http"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/rs/zerolog"

	"github.com/Josh-Willhite/jira-sprint-stats/internal/config"
)

const (
	searchPath = "rest/api/2/search"
	pageSize   = 100
)

// Client represents a Jira API client scoped to one server and one set
// of credentials.
type Client struct {
	api    *gojira.Client
	fields []string
	log    zerolog.Logger
}

// NewClient creates a Jira client using basic auth from cfg. Searches
// only request the configured points field.
func NewClient(cfg config.Config, log zerolog.Logger) (*Client, error) {
	tp := gojira.BasicAuthTransport{
		Username: cfg.User,
		Password: cfg.Password,
	}
	return newClient(tp.Client(), cfg.Server, cfg.PointsField, log)
}

func newClient(httpClient *http.Client, server, pointsField string, log zerolog.Logger) (*Client, error) {
	api, err := gojira.NewClient(httpClient, server)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client for %q: %w", server, err)
	}
	var fields []string
	if pointsField != "" {
		fields = []string{pointsField}
	}
	return &Client{api: api, fields: fields, log: log}, nil
}

// search performs one search request and decodes the page.
func (c *Client) search(ctx context.Context, body searchRequest) (*searchResponse, error) {
	req, err := c.api.NewRequestWithContext(ctx, http.MethodPost, searchPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var page searchResponse
	resp, err := c.api.Do(req, &page)
	if err != nil {
		if resp != nil {
			return nil, gojira.NewJiraError(resp, err)
		}
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	return &page, nil
}

// Search returns every issue matching q, following pagination until the
// reported total is reached.
func (c *Client) Search(ctx context.Context, q *Query) ([]Issue, error) {
	jql := q.String()
	var issues []Issue
	for {
		page, err := c.search(ctx, searchRequest{
			JQL:        jql,
			StartAt:    len(issues),
			MaxResults: pageSize,
			Fields:     c.fields,
		})
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", jql, err)
		}
		issues = append(issues, page.Issues...)
		if len(page.Issues) == 0 || len(issues) >= page.Total {
			break
		}
	}
	c.log.Debug().Str("jql", jql).Int("issues", len(issues)).Msg("jira search")
	return issues, nil
}

// Count returns the number of issues matching q without fetching them.
func (c *Client) Count(ctx context.Context, q *Query) (int, error) {
	jql := q.String()
	page, err := c.search(ctx, searchRequest{JQL: jql, MaxResults: 0, Fields: []string{"key"}})
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", jql, err)
	}
	c.log.Debug().Str("jql", jql).Int("total", page.Total).Msg("jira count")
	return page.Total, nil
}
