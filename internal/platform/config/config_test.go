package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		AppEnv:           "test",
		Port:             "8080",
		DatabaseURL:      "postgres://localhost:5432/ecotest",
		JWTSecret:        "0123456789abcdef0123456789abcdef",
		AwardWeekday:     "monday",
		StatementTimeout: 5 * time.Second,
	}
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, validate(validConfig()))
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""

	err := validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = "too-short"

	err := validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_BadAwardWeekday(t *testing.T) {
	cfg := validConfig()
	cfg.AwardWeekday = "someday"

	require.Error(t, validate(cfg))
}

func TestValidate_NonPositiveStatementTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.StatementTimeout = 0

	require.Error(t, validate(cfg))
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("Friday")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, day)

	_, err = ParseWeekday("weekend")
	assert.Error(t, err)
}
