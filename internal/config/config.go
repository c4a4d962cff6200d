// Package config loads server settings from defaults, an optional
// tripzy.yaml, a .env file and the environment, in increasing order of
// precedence. Command-line flags bound to the same keys win over all of
// them.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys shared by viper, the environment (upper-cased) and tripzy.yaml.
const (
	KeyPort           = "port"
	KeyDBPath         = "db_path"
	KeyLogLevel       = "log_level"
	KeyJWTSecret      = "jwt_secret"
	KeyTokenTTL       = "token_ttl"
	KeyAMQPURL        = "amqp_url"
	KeyAMQPExchange   = "amqp_exchange"
	KeyAMQPQueue      = "amqp_queue"
	KeyGeminiAPIKey   = "gemini_api_key"
	KeyGeminiModel    = "gemini_model"
	KeyCurrencySymbol = "currency_symbol"
)

var ErrMissingJWTSecret = errors.New("jwt_secret is required to serve")

type Config struct {
	// HTTP server
	Port int `mapstructure:"port"`

	// Database
	DBPath string `mapstructure:"db_path"`

	LogLevel string `mapstructure:"log_level"`

	// Sessions
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`

	// AMQP. An empty URL disables event publishing.
	AMQPURL      string `mapstructure:"amqp_url"`
	AMQPExchange string `mapstructure:"amqp_exchange"`
	AMQPQueue    string `mapstructure:"amqp_queue"`

	// Planner. An empty key keeps the rule-based responder only.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// New returns a viper instance with every key defaulted and bound to its
// environment variable.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyDBPath, "./data/tripzy.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyJWTSecret, "")
	v.SetDefault(KeyTokenTTL, 24*time.Hour)
	v.SetDefault(KeyAMQPURL, "")
	v.SetDefault(KeyAMQPExchange, "tripzy")
	v.SetDefault(KeyAMQPQueue, "waitlist_joined")
	v.SetDefault(KeyGeminiAPIKey, "")
	v.SetDefault(KeyGeminiModel, "gemini-2.0-flash")
	v.SetDefault(KeyCurrencySymbol, "$")

	v.SetConfigName("tripzy")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/tripzy")

	v.AutomaticEnv()
	return v
}

// Load reads .env and the config file, if present, and decodes the result.
// A config file named explicitly with SetConfigFile must exist.
func Load(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		slog.Debug("Config file loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db_path cannot be empty"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid token_ttl %v: must be positive", c.TokenTTL))
	}
	if c.CurrencySymbol == "" {
		errs = append(errs, errors.New("currency_symbol cannot be empty"))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid amqp_url: %w", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Errorf("invalid amqp_url scheme %q: must be amqp or amqps", u.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, errors.New("amqp_exchange cannot be empty when amqp_url is set"))
		}
		if c.AMQPQueue == "" {
			errs = append(errs, errors.New("amqp_queue cannot be empty when amqp_url is set"))
		}
	}

	if c.GeminiAPIKey != "" && c.GeminiModel == "" {
		errs = append(errs, errors.New("gemini_model cannot be empty when gemini_api_key is set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateServe adds the checks that only matter for the HTTP server.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", s)
	}
}
