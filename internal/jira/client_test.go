package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Josh-Willhite/jira-sprint-stats/internal/config"
)

// fakeJira serves rest/api/2/search from a fixed issue list, paging as
// requested and recording every request body.
type fakeJira struct {
	issues   []Issue
	requests []searchRequest
	status   int
	user     string
	pass     string
}

func (f *fakeJira) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/"+searchPath || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if u, p, ok := r.BasicAuth(); !ok || u != f.user || p != f.pass {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errorMessages":["bad credentials"]}`)
		return
	}
	if f.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		fmt.Fprint(w, `{"errorMessages":["Error in the JQL Query"],"errors":{}}`)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.requests = append(f.requests, req)

	end := req.StartAt + req.MaxResults
	if end > len(f.issues) {
		end = len(f.issues)
	}
	page := []Issue{}
	if req.StartAt < end {
		page = f.issues[req.StartAt:end]
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(searchResponse{
		StartAt:    req.StartAt,
		MaxResults: req.MaxResults,
		Total:      len(f.issues),
		Issues:     page,
	})
}

func newTestClient(t *testing.T, f *fakeJira) *Client {
	t.Helper()
	f.user, f.pass = "alice", "s3cret"
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.Config{
		Server:      srv.URL,
		User:        "alice",
		Password:    "s3cret",
		PointsField: "customfield_10002",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func makeIssues(n int) []Issue {
	out := make([]Issue, n)
	for i := range out {
		out[i] = Issue{
			Key:    fmt.Sprintf("PROJ-%d", i+1),
			Fields: map[string]interface{}{"customfield_10002": float64(i % 5)},
		}
	}
	return out
}

func TestSearchFollowsPagination(t *testing.T) {
	f := &fakeJira{issues: makeIssues(pageSize*2 + 7)}
	c := newTestClient(t, f)

	issues, err := c.Search(context.Background(), NewQuery().Eq("sprint", "42"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(issues) != pageSize*2+7 {
		t.Fatalf("expected %d issues, got %d", pageSize*2+7, len(issues))
	}
	if len(f.requests) != 3 {
		t.Fatalf("expected 3 page requests, got %d", len(f.requests))
	}
	for i, req := range f.requests {
		if req.StartAt != i*pageSize {
			t.Errorf("request %d startAt = %d", i, req.StartAt)
		}
		if req.JQL != "sprint = 42" {
			t.Errorf("request %d jql = %q", i, req.JQL)
		}
		if len(req.Fields) != 1 || req.Fields[0] != "customfield_10002" {
			t.Errorf("request %d fields = %v", i, req.Fields)
		}
	}
	if got := issues[len(issues)-1].Key; got != fmt.Sprintf("PROJ-%d", pageSize*2+7) {
		t.Errorf("last issue key = %s", got)
	}
	if v, ok := issues[3].Fields["customfield_10002"].(float64); !ok || v != 3 {
		t.Errorf("points field not decoded: %#v", issues[3].Fields)
	}
}

func TestSearchEmpty(t *testing.T) {
	f := &fakeJira{}
	c := newTestClient(t, f)

	issues, err := c.Search(context.Background(), NewQuery().Eq("sprint", "S1"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %d", len(issues))
	}
	if len(f.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(f.requests))
	}
}

func TestCountUsesTotalOnly(t *testing.T) {
	f := &fakeJira{issues: makeIssues(12)}
	c := newTestClient(t, f)

	n, err := c.Count(context.Background(), NewQuery().Eq("sprint", "S1").Eq("creator", "bob"))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 12 {
		t.Fatalf("expected 12, got %d", n)
	}
	if len(f.requests) != 1 || f.requests[0].MaxResults != 0 {
		t.Fatalf("expected a single maxResults=0 request, got %+v", f.requests)
	}
}

func TestSearchSurfacesServerErrors(t *testing.T) {
	f := &fakeJira{status: http.StatusBadRequest}
	c := newTestClient(t, f)

	_, err := c.Search(context.Background(), NewQuery().Eq("sprint", "S1"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Error in the JQL Query") {
		t.Fatalf("server message missing from error: %v", err)
	}
}

func TestSearchBadCredentials(t *testing.T) {
	f := &fakeJira{}
	c := newTestClient(t, f)
	f.pass = "other"

	if _, err := c.Count(context.Background(), NewQuery().Eq("sprint", "S1")); err == nil {
		t.Fatal("expected an error for rejected credentials")
	}
}
