package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, "deny", cfg.IDCheck.Mode)
	assert.Equal(t, "X-Member-ID", cfg.IDCheck.Header)
	assert.Equal(t, 300, cfg.IDCheck.SourceTimeoutSeconds)
	assert.Equal(t, "id_check", cfg.Redis.Channel)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.False(t, cfg.Storage.UseSSL)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("IDCHECK_PATH", "/data/ids.txt")
	t.Setenv("IDCHECK_MODE", "allow")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/data/ids.txt", cfg.IDCheck.Path)
	assert.Equal(t, "allow", cfg.IDCheck.Mode)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("IDCHECK_HEADER=X-Account\nLOG_FORMAT=console\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("IDCHECK_HEADER")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "X-Account", cfg.IDCheck.Header)
	assert.Equal(t, "console", cfg.Log.Format)
}
