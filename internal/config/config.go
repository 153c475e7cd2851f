// Package config loads runtime settings from the environment, optionally
// seeded from a .env file. Every setting has a default so a bare run
// reproduces the stock person/job database.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultSQLitePath   = "personjob.db"
	DefaultVariant      = "managed"
	DefaultTopic        = "personjob.records"
	DefaultAuditGroup   = "personjob-audit"
	DefaultRosterTTL    = 24 * time.Hour
	DefaultAuditWorkers = 1
)

// Config is read from plain env vars; keys match the lowercased names.
type Config struct {
	SQLitePath    string        `koanf:"sqlite_path" validate:"required"`
	Variant       string        `koanf:"personjob_variant" validate:"required,oneof=managed job-linked"`
	LogLevel      string        `koanf:"log_level" validate:"omitempty,oneof=debug info error"`
	KafkaBrokers  string        `koanf:"kafka_brokers"`
	Topic         string        `koanf:"personjob_topic" validate:"required"`
	AuditGroup    string        `koanf:"personjob_audit_group" validate:"required"`
	AuditWorkers  int           `koanf:"audit_workers" validate:"gte=1"`
	RedisAddr     string        `koanf:"redis_addr" validate:"omitempty,hostname_port"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db" validate:"gte=0"`
	RosterTTL     time.Duration `koanf:"personjob_roster_ttl" validate:"gte=0"`
}

var keys = map[string]bool{
	"SQLITE_PATH":           true,
	"PERSONJOB_VARIANT":     true,
	"LOG_LEVEL":             true,
	"KAFKA_BROKERS":         true,
	"PERSONJOB_TOPIC":       true,
	"PERSONJOB_AUDIT_GROUP": true,
	"AUDIT_WORKERS":         true,
	"REDIS_ADDR":            true,
	"REDIS_PASSWORD":        true,
	"REDIS_DB":              true,
	"PERSONJOB_ROSTER_TTL":  true,
}

func defaults() Config {
	return Config{
		SQLitePath:   DefaultSQLitePath,
		Variant:      DefaultVariant,
		Topic:        DefaultTopic,
		AuditGroup:   DefaultAuditGroup,
		AuditWorkers: DefaultAuditWorkers,
		RosterTTL:    DefaultRosterTTL,
	}
}

// Load reads the known keys from the environment over the defaults and
// validates the result. Blank values count as unset.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if !keys[key] || strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), strings.TrimSpace(value)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Brokers splits KAFKA_BROKERS on commas. An empty result disables event
// publishing.
func (c *Config) Brokers() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// EventsEnabled reports whether record events should be published.
func (c *Config) EventsEnabled() bool {
	return len(c.Brokers()) > 0
}

// RosterCacheEnabled reports whether the Redis roster cache is configured.
func (c *Config) RosterCacheEnabled() bool {
	return c.RedisAddr != ""
}
