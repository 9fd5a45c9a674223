package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite3", cfg.Store.Driver)
	assert.Equal(t, "proinvoice.db", cfg.Store.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Autosave.Debounce)
	assert.Equal(t, "Letter", cfg.PDF.PageSize)
	assert.Equal(t, "P", cfg.PDF.Orientation)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PROINVOICE_SERVER_PORT", ":9090")
	t.Setenv("PROINVOICE_STORE_DRIVER", "pgx")
	t.Setenv("PROINVOICE_STORE_DSN", "postgres://localhost/proinvoice")
	t.Setenv("PROINVOICE_AUTOSAVE_DEBOUNCE", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "pgx", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/proinvoice", cfg.Store.DataSource())
	assert.Equal(t, 2*time.Second, cfg.Autosave.Debounce)
}

func TestPortEnvFallback(t *testing.T) {
	t.Setenv("PORT", "3123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3123", cfg.Server.Port)
}

func TestSQLiteDataSource(t *testing.T) {
	s := StoreConfig{Driver: "sqlite3", Path: "data/app.db"}
	assert.Equal(t, "file:data/app.db?_journal_mode=WAL&_busy_timeout=5000", s.DataSource())
}
