//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)

	return path
}

func TestInitializeRestConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfigFile(t, `
service:
  port: "8080"
  enable_stats: true
  audit_enabled: true
logger:
  log_level: info
  log_type: console
database:
  type: sqlite
  dsn: ":memory:"
  db_name: sessions
`)

		cfg, err := InitializeRestConfig(path)
		require.NoError(t, err)
		require.Equal(t, "8080", cfg.Service.Port)
		require.True(t, cfg.Service.EnableStats)
		require.Equal(t, LogTypeConsole, cfg.Logger.LogType)
		require.Equal(t, SqliteDbType, cfg.Database.Type)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := InitializeRestConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfigFile(t, "service: [")
		_, err := InitializeRestConfig(path)
		require.Error(t, err)
	})

	t.Run("invalid settings", func(t *testing.T) {
		path := writeConfigFile(t, `
service:
  port: "8080"
logger:
  log_level: shout
  log_type: console
database:
  type: sqlite
  dsn: ":memory:"
  db_name: sessions
`)
		_, err := InitializeRestConfig(path)
		require.Error(t, err)
	})
}
