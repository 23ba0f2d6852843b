package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// CurrentVersion of the config file format.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version int    `koanf:"version"`
	Server  Server `koanf:"server"`
	Auth    Auth   `koanf:"auth"`
	Triage  Triage `koanf:"triage"`
	// PostgreSQL connection string. Overridable via DATABASE_URL.
	DatabaseURL string `koanf:"database_url"`
	// Optional redis address for the consent cache. Empty disables caching.
	RedisAddr string `koanf:"redis_addr"`
}

type Server struct {
	Port string `koanf:"port"`
	// "dev" or "prod"; selects the logger encoding.
	Mode string `koanf:"mode"`
}

type Auth struct {
	// HMAC secret for bearer token verification. Overridable via JWT_SECRET.
	JWTSecret string `koanf:"jwt_secret"`
}

type Triage struct {
	// Path to the symptom knowledge base file.
	KnowledgeBasePath string `koanf:"knowledge_base_path"`
	// Migration source, e.g. file://migrations.
	MigrationsURL string `koanf:"migrations_url"`
}

// Load reads the config file from the given path, applying environment
// overrides for secrets.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: expected %d, got %d",
			ErrConfigVersionMismatch, CurrentVersion, cfg.Version)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}

	return &cfg, nil
}
