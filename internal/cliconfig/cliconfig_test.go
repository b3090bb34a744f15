package cliconfig

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("YIGYAPS_CONFIG_DIR", t.TempDir())
	t.Setenv("YIGYAPS_REGISTRY_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.FirstRun)
	require.Equal(t, "http://localhost:8080", cfg.RegistryURL)
	require.Empty(t, cfg.ApiKey)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("YIGYAPS_CONFIG_DIR", dir)
	t.Setenv("YIGYAPS_REGISTRY_URL", "")

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, Save(&Config{
		RegistryURL: "https://registry.example.com",
		ApiKey:      "yy_secret",
		Username:    "tester",
		LastLogin:   &now,
	}))

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.FirstRun)
	require.Equal(t, "https://registry.example.com", cfg.RegistryURL)
	require.Equal(t, "yy_secret", cfg.ApiKey)
	require.Equal(t, "tester", cfg.Username)
	require.True(t, now.Equal(*cfg.LastLogin))

	// No stray temp file after the atomic rename.
	_, err = os.Stat(filepath.Join(dir, "config.json.tmp"))
	require.True(t, os.IsNotExist(err))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dir, "config.json"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestEnvOverridesRegistryURL(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("YIGYAPS_CONFIG_DIR", dir)
	require.NoError(t, Save(&Config{RegistryURL: "https://stored.example.com"}))

	t.Setenv("YIGYAPS_REGISTRY_URL", "https://override.example.com")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://override.example.com", cfg.RegistryURL)
}
