package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// MyID holds the identity provider credentials and endpoints.
type MyID struct {
	BaseURL      string        `env:"BASE_URL,required"`
	ClientID     string        `env:"CLIENT_ID,required"`
	ClientSecret string        `env:"CLIENT_SECRET,required"`
	Timeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
}

// Config is the process configuration, read once at startup and passed
// to constructors; nothing reads ambient environment at call time.
type Config struct {
	ListenAddr  string        `env:"LISTEN_ADDR" envDefault:":8080"`
	DatabaseURL string        `env:"DATABASE_URL,required"`
	StateTTL    time.Duration `env:"OAUTH_STATE_TTL" envDefault:"10m"`

	MyID MyID `envPrefix:"MYID_"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}
