package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_endpoint_addr":  "http://shop.example:9000",
		"database_path":         "json.db",
		"online_check_interval": "10s",
	})

	t.Run("loads from config flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "http://shop.example:9000", cfg.ServerEndpointAddr)
		assert.Equal(t, "json.db", cfg.DatabasePath)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("no config flag leaves cfg unchanged", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			ServerEndpointAddr:  "http://defaults:1234",
			DatabasePath:        "defaults.db",
			OnlineCheckInterval: 42 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "http://defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, "defaults.db", cfg.DatabasePath)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("omitted fields keep prior values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"database_path": "partial.db",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "http://127.0.0.1:8000", cfg.ServerEndpointAddr)
		assert.Equal(t, "partial.db", cfg.DatabasePath)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
