package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "arqdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/arqdb.yaml")
		assert.Error(t, err)
	})

	t.Run("values override defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
http_addr: ":9000"
auth_token: "hunter2"
log_level: debug
max_graphs: 16
pprof_enabled: true
`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.HTTPAddr)
		assert.Equal(t, "hunter2", cfg.AuthToken)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 16, cfg.MaxGraphs)
		assert.True(t, cfg.PprofEnabled)
	})

	t.Run("partial file keeps remaining defaults", func(t *testing.T) {
		path := writeConfigFile(t, "max_graphs: 3\n")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.MaxGraphs)
		assert.Equal(t, DefaultConfig().HTTPAddr, cfg.HTTPAddr)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := writeConfigFile(t, "htpp_adr: \":9000\"\n")

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}
