package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"1001"`

	// MongoURI empty means the in-memory record store; same for RedisAddr
	// and the in-memory session store. That keeps local runs and tests
	// free of external services.
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"api_key_admin"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SecureCookie bool          `env:"SECURE_COOKIE" envDefault:"false"`

	// ExportDir receives the incidental server-side copy of the CSV
	// export.
	ExportDir string `env:"EXPORT_DIR" envDefault:"."`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}
