package cmd

import (
	"github.com/rs/zerolog"

	"github.com/Josh-Willhite/jira-sprint-stats/internal/config"
	"github.com/Josh-Willhite/jira-sprint-stats/internal/jira"
)

// loadClient reads the config file and opens a tracker client for it.
func loadClient(path string, log zerolog.Logger) (config.Config, *jira.Client, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	client, err := jira.NewClient(cfg, log)
	if err != nil {
		return cfg, nil, err
	}
	log.Debug().Str("server", cfg.Server).Str("user", cfg.User).Msg("jira client ready")
	return cfg, client, nil
}
