package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleJSON = `{
  "server": "https://jira.example.com",
  "user": "alice",
  "password": "hunter22",
  "sprints": ["S2", "S1", 42],
  "users": ["alice", "bob"],
  "points_field": "customfield_10002"
}`

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.json", sampleJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Server:      "https://jira.example.com",
		User:        "alice",
		Password:    "hunter22",
		Sprints:     []string{"S2", "S1", "42"},
		Users:       []string{"alice", "bob"},
		PointsField: "customfield_10002",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", "server: https://jira\nsprints: [A, B]\nusers: [carol]\npoints_field: cf\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server != "https://jira" || len(cfg.Sprints) != 2 || cfg.Users[0] != "carol" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SPRINT_STATS_PASSWORD", "from-env")
	t.Setenv("SPRINT_STATS_USERS", "dave, erin ,")

	cfg, err := Load(writeFile(t, "config.json", sampleJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Password != "from-env" {
		t.Errorf("password = %q", cfg.Password)
	}
	if !reflect.DeepEqual(cfg.Users, []string{"dave", "erin"}) {
		t.Errorf("users = %q", cfg.Users)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected error for empty path")
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
	if _, err := Load(writeFile(t, "bad.json", "{not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestSetValue(t *testing.T) {
	path := writeFile(t, "config.json", sampleJSON)

	if err := SetValue(path, "sprints", "S3, S4"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if err := SetValue(path, "server", "https://other"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Sprints, []string{"S3", "S4"}) || cfg.Server != "https://other" {
		t.Fatalf("unexpected config after set: %+v", cfg)
	}
	if cfg.User != "alice" {
		t.Fatalf("unrelated keys lost: %+v", cfg)
	}

	if err := SetValue(path, "colour", "blue"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestSetValueIgnoresEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.json", sampleJSON)
	t.Setenv("SPRINT_STATS_PASSWORD", "env-secret")
	t.Setenv("SPRINT_STATS_USERS", "mallory")

	if err := SetValue(path, "server", "https://other"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "env-secret") || strings.Contains(string(data), "mallory") {
		t.Fatalf("environment values written to file:\n%s", data)
	}

	// empty values count as unset, so Load reads the file's own entries
	t.Setenv("SPRINT_STATS_PASSWORD", "")
	t.Setenv("SPRINT_STATS_USERS", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Password != "hunter22" {
		t.Errorf("file password = %q, want hunter22", cfg.Password)
	}
	if !reflect.DeepEqual(cfg.Users, []string{"alice", "bob"}) {
		t.Errorf("file users = %q", cfg.Users)
	}
	if cfg.Server != "https://other" {
		t.Errorf("server = %q", cfg.Server)
	}
}

func TestSetValueCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")
	if err := SetValue(path, "user", "frank"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.User != "frank" {
		t.Fatalf("user = %q", cfg.User)
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"short":      "*****",
		"longsecret": "lo******et",
	}
	for in, want := range tests {
		if got := Mask(in); got != want {
			t.Errorf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}
