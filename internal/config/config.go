package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store names a patient repository backend.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRemote   = "remote"
)

type Config struct {
	Port          string   `mapstructure:"PORT"`
	Env           string   `mapstructure:"ENV"`
	Store         string   `mapstructure:"STORE"`
	DatabaseURL   string   `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int32    `mapstructure:"DB_MIN_CONNS"`
	RemoteBaseURL string   `mapstructure:"REMOTE_BASE_URL"`
	RemoteTimeout int      `mapstructure:"REMOTE_TIMEOUT_SECONDS"`
	SeedCount     int      `mapstructure:"SEED_COUNT"`
	SeedValue     int64    `mapstructure:"SEED_VALUE"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE", StoreMemory)
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("REMOTE_TIMEOUT_SECONDS", 10)
	v.SetDefault("SEED_COUNT", 5000)
	v.SetDefault("SEED_VALUE", 1)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("STORE")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REMOTE_BASE_URL")
	v.BindEnv("REMOTE_TIMEOUT_SECONDS")
	v.BindEnv("SEED_COUNT")
	v.BindEnv("SEED_VALUE")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the selected store has the configuration it needs.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
		// nothing required
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE=postgres")
		}
	case StoreRemote:
		if c.RemoteBaseURL == "" {
			return fmt.Errorf("REMOTE_BASE_URL is required when STORE=remote")
		}
	default:
		return fmt.Errorf("STORE must be %q, %q, or %q, got %q",
			StoreMemory, StorePostgres, StoreRemote, c.Store)
	}
	if c.SeedCount < 0 {
		return fmt.Errorf("SEED_COUNT must be non-negative, got %d", c.SeedCount)
	}
	return nil
}
