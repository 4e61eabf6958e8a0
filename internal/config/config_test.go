package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[loop]
frame_rate = 120
max_delta_time = "100ms"

[network]
enabled = false

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Loop.FrameRate)
	assert.Equal(t, 100*time.Millisecond, cfg.Loop.MaxDeltaTime)
	assert.Equal(t, 60, cfg.Loop.RefreshRate, "untouched keys keep defaults")
	assert.False(t, cfg.Network.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "data/yaml/weapons.yaml", cfg.Data.Weapons)
	assert.NotZero(t, cfg.Server.StartTime)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "[loop]\nframe_rate = 0\n"))
	assert.ErrorContains(t, err, "frame_rate")

	_, err = Load(writeConfig(t, "[debug]\nprofile = \"trace\"\n"))
	assert.ErrorContains(t, err, "profile")

	_, err = Load(writeConfig(t, "[loop\n"))
	assert.ErrorContains(t, err, "parse config")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "read config")
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "server.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Loop, cfg.Loop)
	assert.Empty(t, cfg.Database.DSN)
}
