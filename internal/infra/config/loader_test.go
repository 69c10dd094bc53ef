package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/goalpost/internal/domain"
)

func TestLoader_Load_LocalConfigOnly(t *testing.T) {
	// Setup: create temp directories
	dataDir := t.TempDir()
	globalDir := t.TempDir()

	// Write local config
	localConfig := `
[store]
backend = "sqlite"

[log]
level = "debug"
`
	err := os.WriteFile(domain.ConfigPath(dataDir), []byte(localConfig), 0o644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(dataDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify
	assert.Equal(t, domain.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoader_Load_GlobalConfigOnly(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	globalDir := t.TempDir()

	// Write global config only
	globalConfig := `
[store]
backend = "sqlite"
path = "/var/lib/goalpost/goalpost.db"
`
	err := os.WriteFile(domain.ConfigPath(globalDir), []byte(globalConfig), 0o644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(dataDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify
	assert.Equal(t, domain.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/goalpost/goalpost.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level) // default kept
}

func TestLoader_Load_MergeLocalOverridesGlobal(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	globalDir := t.TempDir()

	// Write global config
	globalConfig := `
[store]
backend = "sqlite"

[log]
level = "warn"
`
	err := os.WriteFile(domain.ConfigPath(globalDir), []byte(globalConfig), 0o644)
	require.NoError(t, err)

	// Write local config (overrides some values)
	localConfig := `
[log]
level = "debug"
`
	err = os.WriteFile(domain.ConfigPath(dataDir), []byte(localConfig), 0o644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(dataDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify: local overrides global, untouched values pass through
	assert.Equal(t, domain.BackendSQLite, cfg.Store.Backend) // From global
	assert.Equal(t, "debug", cfg.Log.Level)                  // Overridden by local
}

func TestLoader_Load_NoConfigFiles(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.BackendJSON, cfg.Store.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoader_Load_InvalidBackend(t *testing.T) {
	dataDir := t.TempDir()

	localConfig := `
[store]
backend = "postgres"
`
	err := os.WriteFile(domain.ConfigPath(dataDir), []byte(localConfig), 0o644)
	require.NoError(t, err)

	loader := NewLoaderWithGlobalDir(dataDir, t.TempDir())
	_, err = loader.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestLoader_Load_MalformedTOML(t *testing.T) {
	dataDir := t.TempDir()

	err := os.WriteFile(domain.ConfigPath(dataDir), []byte("[store\nbackend ="), 0o644)
	require.NoError(t, err)

	loader := NewLoaderWithGlobalDir(dataDir, t.TempDir())
	_, err = loader.Load()
	assert.Error(t, err)
}
