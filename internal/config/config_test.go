package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	for _, key := range []string{"APP_ENV", "PORT", "DB_HOST", "DB_PORT", "SEARCH_DEFAULT_PAGE_SIZE", "SEARCH_SIMILARITY_THRESHOLD"} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_YAMLWithDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  env: local
database:
  dbname: search
search:
  similarity_threshold: 0.3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "search", cfg.Database.DBName)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10, cfg.Search.DefaultPageSize)
	assert.Equal(t, "simple", cfg.Search.TextSearchConfig)
	assert.InDelta(t, 0.3, cfg.Search.SimilarityThreshold, 1e-9)
	assert.Equal(t, "repeatable_read", cfg.Search.SnapshotIsolation)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  host: file-host
search:
  default_page_size: 20
`)
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("SEARCH_DEFAULT_PAGE_SIZE", "25")
	t.Setenv("SEARCH_SIMILARITY_THRESHOLD", "0.45")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 25, cfg.Search.DefaultPageSize)
	assert.InDelta(t, 0.45, cfg.Search.SimilarityThreshold, 1e-9)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8082, cfg.Server.Port)
}

func TestLoad_RejectsOversizedPageSize(t *testing.T) {
	path := writeConfig(t, `
search:
  default_page_size: 51
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RequiresSecretInProduction(t *testing.T) {
	path := writeConfig(t, `
server:
  env: production
`)
	t.Setenv("JWT_SECRET", "")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestCORSConfig_SplitOrigins(t *testing.T) {
	c := CORSConfig{AllowOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.SplitOrigins())
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable TimeZone=UTC", d.GetDSN())
}
