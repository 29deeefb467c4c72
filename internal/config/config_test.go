package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "tmdb-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8084", cfg.Port)
	assert.Equal(t, "es-ES", cfg.TMDB.Language)
	assert.Equal(t, 6*time.Hour, cfg.TMDB.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.5-flash-lite", "gemini-2.0-flash"}, cfg.LLM.Models)
	assert.Equal(t, int32(0), cfg.LLM.TokenBudget)
	assert.Equal(t, 10, cfg.RateLimit.Max)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "tmdb-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GEMINI_MODELS", " gemini-2.5-pro , ,gemini-2.0-flash")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("CATALOG_TIMEOUT", "not-a-duration")
	t.Setenv("LLM_TOKEN_BUDGET", "200000")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"gemini-2.5-pro", "gemini-2.0-flash"}, cfg.LLM.Models)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 8*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, int32(200000), cfg.LLM.TokenBudget)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestLoad_MissingKeys(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	_, err := Load()
	assert.ErrorContains(t, err, "TMDB_API_KEY")

	t.Setenv("TMDB_API_KEY", "tmdb-key")
	t.Setenv("GEMINI_API_KEY", "")
	_, err = Load()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestDSN(t *testing.T) {
	d := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())

	d.SSLRootCert = "/ca.pem"
	assert.Contains(t, d.DSN(), "sslrootcert=/ca.pem")
}
