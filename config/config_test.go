package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequired sets the values that have no default, and clears the rest so
// the developer's shell does not leak into the test.
func setRequired(t *testing.T) {
	t.Helper()
	for _, k := range []string{"POLYGON_BASE_URL", "HTTP_ADDR", "REQUEST_TIMEOUT", "STATEMENT_TIMEOUT",
		"DB_MAX_CONNS", "CACHE_TTL", "LOG_LEVEL", "EXPORT_DIR", "EXPORT_FORMAT", "MIGRATE_ON_START"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("POLYGON_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/px")
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func Test_Load_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load("", noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "https://api.polygon.io", cfg.BaseUrl)
	assert.Equal(t, "env-key", cfg.ApiKey)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.StatementTimeout)
	assert.Equal(t, int32(4), cfg.MaxConns)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.ExportFormat)
	assert.Empty(t, cfg.ExportDir)
	assert.False(t, cfg.MigrateOnStart)
}

func Test_Load_YamlThenEnv(t *testing.T) {
	setRequired(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: http://localhost:9999
api_key: yaml-key
addr: ":9090"
request_timeout: 5s
max_conns: 8
export_dir: /tmp/px
export_format: parquet
migrate_on_start: true
`), 0o600))

	t.Setenv("DB_MAX_CONNS", "2")

	cfg, err := Load(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.BaseUrl)
	assert.Equal(t, "env-key", cfg.ApiKey) // env wins over yaml
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int32(2), cfg.MaxConns)
	assert.Equal(t, "/tmp/px", cfg.ExportDir)
	assert.Equal(t, "parquet", cfg.ExportFormat)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, 10*time.Second, cfg.StatementTimeout)
}

func Test_Load_DotEnvFile(t *testing.T) {
	setRequired(t)
	os.Unsetenv("POLYGON_API_KEY")
	t.Setenv("LOG_LEVEL", "debug")

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("POLYGON_API_KEY=file-key\nLOG_LEVEL=error\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("POLYGON_API_KEY") })

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.ApiKey)
	assert.Equal(t, "debug", cfg.LogLevel) // already set, not overridden
}

func Test_Load_Invalid(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load("", noEnvFile(t))
	assert.Error(t, err)
}

func Test_Load_MissingRequired(t *testing.T) {
	setRequired(t)
	os.Unsetenv("DATABASE_URL")

	_, err := Load("", noEnvFile(t))
	assert.Error(t, err)
}

func Test_Load_MissingFile(t *testing.T) {
	setRequired(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnvFile(t))
	assert.Error(t, err)
}
