package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort      string `mapstructure:"APP_PORT"`
	Env          string `mapstructure:"ENV"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	FrontendURL  string `mapstructure:"FRONTEND_URL"`

	// Session configuration.
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	SessionTTLMin int    `mapstructure:"SESSION_TTL_MIN"`
	SessionStore  string `mapstructure:"SESSION_STORE"` // "memory" or "redis"

	// Redis configuration (session store).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Abuse mitigation knobs. The enforcement points are fixed; the values
	// are tunable.
	MaxAccountsPerIP   int `mapstructure:"MAX_ACCOUNTS_PER_IP"`
	GlobalRatePer15Min int `mapstructure:"GLOBAL_RATE_PER_15MIN"`
	AuthRatePer15Min   int `mapstructure:"AUTH_RATE_PER_15MIN"`
	BookingRatePerMin  int `mapstructure:"BOOKING_RATE_PER_MIN"`
}

// Load reads configuration from config.yaml (current dir or ./config) and
// the environment, applying defaults for anything unset.
func Load() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_PATH", "data/counselbook.db")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_TTL_MIN", 30)
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("MAX_ACCOUNTS_PER_IP", 3)
	viper.SetDefault("GLOBAL_RATE_PER_15MIN", 100)
	viper.SetDefault("AUTH_RATE_PER_15MIN", 5)
	viper.SetDefault("BOOKING_RATE_PER_MIN", 10)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
		// No config file is fine; environment variables and defaults apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.IsProduction() && cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET must be set in production")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
