package config

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string  `mapstructure:"PORT"`
	Env            string  `mapstructure:"ENV"`
	APIBaseURL     string  `mapstructure:"API_BASE_URL"`
	APITimeout     int     `mapstructure:"API_TIMEOUT_SECONDS"`
	SessionSecret  string  `mapstructure:"SESSION_SECRET"`
	SessionCookie  string  `mapstructure:"SESSION_COOKIE"`
	SessionTTLMin  int     `mapstructure:"SESSION_TTL_MINUTES"`
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("API_TIMEOUT_SECONDS", 15)
	v.SetDefault("SESSION_COOKIE", "console_session")
	v.SetDefault("SESSION_TTL_MINUTES", 480)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("API_BASE_URL")
	v.BindEnv("API_TIMEOUT_SECONDS")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_COOKIE")
	v.BindEnv("SESSION_TTL_MINUTES")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.IsDev() && cfg.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET not set; using an ephemeral development secret.")
		log.Println("WARNING: Sessions will not survive a restart. Set SESSION_SECRET for production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the console is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SessionTTL returns the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}

// APIRequestTimeout returns the per-request deadline for backend calls.
func (c *Config) APIRequestTimeout() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}

// Validate checks that the configuration is safe to run. API_BASE_URL is
// always required; outside development SESSION_SECRET must be set so that
// session cookies survive restarts and cannot be forged per-instance.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
	}
	if !c.IsDev() && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required when ENV=%q", c.Env)
	}
	if c.SessionTTLMin <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMin)
	}
	return nil
}
