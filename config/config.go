// config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sweat-battle-system/logging"
	"sweat-battle-system/utils"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"5300"`
	DBDriver       string   `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL    string   `env:"DATABASE_URL,required,notEmpty"`
	ServiceToken   string   `env:"GAME_SERVICE_TOKEN,required,notEmpty"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	HealthServiceURL   string `env:"HEALTH_SERVICE_URL"`
	HealthServiceToken string `env:"HEALTH_SERVICE_TOKEN"`

	R2 utils.R2Config

	BattleMaxRetries        int           `env:"BATTLE_MAX_RETRIES" envDefault:"5"`
	RewardReconcileInterval time.Duration `env:"REWARD_RECONCILE_INTERVAL" envDefault:"1m"`

	// ActivitySyncInterval of zero disables the background sync worker.
	ActivitySyncInterval time.Duration `env:"ACTIVITY_SYNC_INTERVAL" envDefault:"1h"`
}

// Load reads .env if present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Info("no .env file found, reading environment variables directly", nil)
	}
	return parse(env.Options{})
}

// FromEnv builds a Config from environ instead of the process environment.
func FromEnv(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

// parse joins env parsing errors with range checks into one error.
func parse(opts env.Options) (*Config, error) {
	c := &Config{}
	var errs []error
	if err := env.ParseWithOptions(c, opts); err != nil {
		errs = append(errs, fmt.Errorf("parse env: %w", err))
	}

	c.AllowedOrigins = trimList(c.AllowedOrigins)
	c.HealthServiceURL = strings.TrimRight(c.HealthServiceURL, "/")

	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver))
	}
	if c.BattleMaxRetries <= 0 {
		errs = append(errs, fmt.Errorf("BATTLE_MAX_RETRIES must be a positive integer, got %d", c.BattleMaxRetries))
	}
	if c.RewardReconcileInterval <= 0 {
		errs = append(errs, fmt.Errorf("REWARD_RECONCILE_INTERVAL must be a positive duration, got %s", c.RewardReconcileInterval))
	}
	if c.ActivitySyncInterval < 0 {
		errs = append(errs, fmt.Errorf("ACTIVITY_SYNC_INTERVAL must not be negative, got %s", c.ActivitySyncInterval))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func trimList(in []string) []string {
	var out []string
	for _, part := range in {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
