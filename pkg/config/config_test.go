package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, "./files", config.FilesDir)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")

		expectedConfig := &Config{
			DataDir:  "/custom/data",
			FilesDir: "/custom/files",
			Logging:  Logging{Level: "debug"},
		}
		data, err := yaml.Marshal(expectedConfig)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(configPath, data, 0600))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, config)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("{not yaml: ["), 0600))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := &Config{
		DataDir:  "/srv/fieldvault/db",
		FilesDir: "/srv/fieldvault/files",
		Logging:  Logging{Level: "warn"},
	}
	require.NoError(t, SaveConfig(original, configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestBootstrapConfig(t *testing.T) {
	t.Run("creates config when absent", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")

		config, err := BootstrapConfig(configPath, filepath.Join(tmpDir, "storage"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "storage", "db"), config.DataDir)
		assert.Equal(t, filepath.Join(tmpDir, "storage", "files"), config.FilesDir)
		assert.True(t, ConfigExists(configPath))
	})

	t.Run("loads existing config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")

		existing := &Config{DataDir: "/keep/db", FilesDir: "/keep/files", Logging: Logging{Level: "error"}}
		require.NoError(t, SaveConfig(existing, configPath))

		config, err := BootstrapConfig(configPath, "/ignored")
		require.NoError(t, err)
		assert.Equal(t, existing, config)
	})
}

func TestConfigExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	assert.False(t, ConfigExists(configPath))
	require.NoError(t, os.WriteFile(configPath, []byte("data_dir: ./d\n"), 0600))
	assert.True(t, ConfigExists(configPath))
}
