package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args []string) {
	t.Helper()
	old := os.Args
	os.Args = args
	t.Cleanup(func() { os.Args = old })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, StorageFile, c.StorageBackend)
	assert.Equal(t, "users.json", c.UsersFilePath)
	assert.False(t, c.StoreFailOpen)
	assert.Equal(t, DefaultSecretKey, c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "authvault", c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "users.json", c.S3ObjectKey)
}

func TestUsingDefaultSecret(t *testing.T) {
	var c Config
	c.LoadDefaults()
	assert.True(t, c.UsingDefaultSecret())

	c.SecretKey = "real-secret"
	assert.False(t, c.UsingDefaultSecret())
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	resetArgs(t, []string{"cmd"})

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, StorageFile, c.StorageBackend)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t, []string{"cmd"})
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("STORAGE_BACKEND", "postgres")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, time.Hour, c.TokenValidityDuration)
	assert.Equal(t, StoragePostgres, c.StorageBackend)
	assert.False(t, c.UsingDefaultSecret())
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	resetArgs(t, []string{"cmd", "-a", ":9090", "-s", "flag-secret", "-t", "30m"})
	t.Setenv("ADDRESS", ":7070")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, "flag-secret", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.TokenValidityDuration)
}
