package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
version = 1
database_url = "postgres://localhost/otcwise"

[server]
port = "8080"
mode = "dev"

[auth]
jwt_secret = "file-secret"

[triage]
knowledge_base_path = "kb/symptoms.yaml"
migrations_url = "file://migrations"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "kb/symptoms.yaml", cfg.Triage.KnowledgeBasePath)
	assert.Equal(t, "postgres://localhost/otcwise", cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoadVersionMismatch(t *testing.T) {
	_, err := Load(writeConfig(t, `version = 99`))
	assert.ErrorIs(t, err, ErrConfigVersionMismatch)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/otcwise")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "postgres://env/otcwise", cfg.DatabaseURL)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}
