package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the settings passed to the handler at construction time.
// The webhook route is the only value read from the environment.
type Config struct {
	// Route is the webhook path on hooks.slack.com, e.g. /services/T000/B000/XXXX.
	// It is passed through as supplied.
	Route string `env:"SLACK_PATH,required"`
}

// New reads the config from the process environment.
func New(ctx context.Context) (*Config, error) {
	return newConfig(ctx, envconfig.OsLookuper())
}

func newConfig(ctx context.Context, lu envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &cfg, lu); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
