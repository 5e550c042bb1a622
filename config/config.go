// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Event schema variants. A deployment runs exactly one.
const (
	SchemaCourses = "courses"
	SchemaResults = "results"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Server
	Debug            bool
	Port             string
	TLSDomains       []string
	CORSAllowOrigins []string

	// EventSchema selects the events table shape: SchemaCourses or SchemaResults.
	EventSchema string

	// JSON fetch proxy
	JSONFetchTimeout time.Duration
	JSONFetchRate    float64

	// MySQL – legacy database read by the admin migrate command.
	MySQLDSN string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() (*Config, error) {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "rogainizer")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "rogainizer")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":3000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("DEBUG", false)
	v.SetDefault("EVENT_SCHEMA", SchemaCourses)
	v.SetDefault("JSON_FETCH_TIMEOUT", "15s")
	v.SetDefault("JSON_FETCH_RATE", 5.0)

	cfg := &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		DBUser:           v.GetString("DB_USER"),
		DBPass:           v.GetString("DB_PASS"),
		DBHost:           v.GetString("DB_HOST"),
		DBPort:           v.GetString("DB_PORT"),
		DBName:           v.GetString("DB_NAME"),
		DBSSLMode:        v.GetString("DB_SSLMODE"),
		Debug:            v.GetBool("DEBUG"),
		Port:             v.GetString("PORT"),
		TLSDomains:       splitTrimmed(v.GetString("TLS_DOMAINS")),
		CORSAllowOrigins: splitTrimmed(v.GetString("CORS_ALLOW_ORIGINS")),
		EventSchema:      strings.ToLower(strings.TrimSpace(v.GetString("EVENT_SCHEMA"))),
		JSONFetchTimeout: v.GetDuration("JSON_FETCH_TIMEOUT"),
		JSONFetchRate:    v.GetFloat64("JSON_FETCH_RATE"),
		MySQLDSN:         v.GetString("MYSQL_DSN"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// ScoredEvents reports whether events use the (year, series, name) results schema.
func (c *Config) ScoredEvents() bool {
	return c.EventSchema == SchemaResults
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" && c.DBPass == "" {
		return errors.New("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.EventSchema != SchemaCourses && c.EventSchema != SchemaResults {
		return fmt.Errorf("config: EVENT_SCHEMA must be %q or %q, got %q", SchemaCourses, SchemaResults, c.EventSchema)
	}
	if c.JSONFetchTimeout <= 0 {
		return errors.New("config: JSON_FETCH_TIMEOUT must be positive")
	}
	if c.JSONFetchRate <= 0 {
		return errors.New("config: JSON_FETCH_RATE must be positive")
	}
	if !c.Debug && len(c.TLSDomains) == 0 {
		return errors.New("config: TLS_DOMAINS must be set unless DEBUG is enabled")
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
