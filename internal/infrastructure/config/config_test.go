package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "retail-backoffice", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, int64(5<<20), cfg.Import.MaxFileSize)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RETAIL_APP_PORT", "9090")
	t.Setenv("RETAIL_DATABASE_HOST", "db.internal")
	t.Setenv("RETAIL_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	t.Run("rejects unknown env", func(t *testing.T) {
		t.Setenv("RETAIL_APP_ENV", "staging")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires a database password", func(t *testing.T) {
		t.Setenv("RETAIL_APP_ENV", "production")
		_, err := Load()
		assert.Error(t, err)
	})
}
