package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	JWTSecret   string `env:"JWT_SECRET"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// AwardWeekday is the day on which computed weekly awards are credited.
	AwardWeekday string `env:"AWARD_WEEKDAY" default:"monday"`

	// StatementTimeout bounds each store transaction; exceeding it surfaces
	// as a store-timeout failure rather than a generic error.
	StatementTimeout time.Duration `env:"DB_STATEMENT_TIMEOUT" default:"5s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"JWT_SECRET":   cfg.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if len(cfg.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(cfg.JWTSecret))
	}

	if _, err := ParseWeekday(cfg.AwardWeekday); err != nil {
		return err
	}

	if cfg.StatementTimeout <= 0 {
		return fmt.Errorf("DB_STATEMENT_TIMEOUT must be positive, got %s", cfg.StatementTimeout)
	}

	return nil
}

// ParseWeekday converts a case-insensitive English weekday name.
func ParseWeekday(name string) (time.Weekday, error) {
	weekdays := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	day, ok := weekdays[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("AWARD_WEEKDAY must be a weekday name, got %q", name)
	}
	return day, nil
}
