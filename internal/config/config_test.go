package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RECORDMAP_LOG_LEVEL", "debug")
	t.Setenv("RECORDMAP_TELEMETRY_ENABLED", "true")
	t.Setenv("RECORDMAP_STREAM", "orders")

	cfg, err := Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "orders", cfg.Stream)
	assert.True(t, cfg.Telemetry.Enabled)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: files/layout.yaml\nlog:\n  format: json\n"), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "files/layout.yaml", cfg.Layout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())

	v := viper.New()
	v.Set("layout", "other.yaml")

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", cfg.Layout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		env, value string
	}{
		{"RECORDMAP_LOG_LEVEL", "loud"},
		{"RECORDMAP_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := Load(nil, "")
			require.Error(t, err)
		})
	}

	_, err := Load(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
