package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("RepositoryFile", func(t *testing.T) {
		cfg, err := LoadConfig("config.yml")
		require.NoError(t, err)
		require.Equal(t, DefaultProviderURL, cfg.Provider.URL)
		require.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
		require.Equal(t, "round_robin", cfg.Rotator.Strategy)
		require.Equal(t, JournalNone, cfg.Journal.Driver)
		require.False(t, cfg.Settings.Enabled)
	})

	t.Run("DefaultsForMissingKeys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("settings:\n  enabled: true\n"), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.True(t, cfg.Settings.Enabled)
		require.Equal(t, 10*time.Second, cfg.Provider.Timeout)
		require.Equal(t, 8089, cfg.Server.Port)
		require.Equal(t, "public", cfg.Journal.Schema)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("PROXY_ROTATOR_PROVIDER_URL", "http://lists.local/http.txt")
		t.Setenv("PROXY_ROTATOR_JOURNAL_DRIVER", JournalSQLite)
		t.Setenv("PROXY_ROTATOR_JOURNAL_DSN", "file:journal.db")

		cfg, err := LoadConfig("config.yml")
		require.NoError(t, err)
		require.Equal(t, "http://lists.local/http.txt", cfg.Provider.URL)
		require.Equal(t, JournalSQLite, cfg.Journal.Driver)
		require.Equal(t, "file:journal.db", cfg.Journal.DSN)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Journal.Driver = JournalPostgres
	require.Error(t, cfg.Validate(), "postgres journal without dsn")

	cfg.Journal.DSN = "postgres://localhost/proxies"
	require.NoError(t, cfg.Validate())

	cfg.Journal.Driver = "mongo"
	require.Error(t, cfg.Validate())
}
