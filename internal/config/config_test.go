package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "env-secret")
	t.Setenv("DATABASE_NAME", "fitbyte_test")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "fitbyte_test", cfg.Database.Name)
	assert.Equal(t, 5*time.Second, cfg.Database.OpTimeout)
	assert.Equal(t, "env-secret", cfg.Session.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Session.Expiration)
	assert.Equal(t, "fitbyte_session", cfg.Session.CookieName)
	assert.Equal(t, []string{"male", "female", "other"}, cfg.Registration.Genders)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  address: ":9090"
session:
  secret: file-secret
  expiration: 2h
registration:
  genders: [male, female]
  min_age: 13
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "file-secret", cfg.Session.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Session.Expiration)
	assert.Equal(t, []string{"male", "female"}, cfg.Registration.Genders)
	assert.Equal(t, 13, cfg.Registration.MinAge)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.ErrorIs(t, err, ErrMissingSessionSecret)
}
