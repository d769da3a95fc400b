package config

import (
	"os"
	"path/filepath"
	"testing"

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
	assert.Equal(t, "http://localhost:8080", c.ServerAddr)
}

func TestLoadConfig_DefaultsOnly(t *testing.T) {
	resetArgs(t, []string{"cli"})

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.ServerAddr)
}

func TestLoadConfig_FlagOverridesDefaults(t *testing.T) {
	resetArgs(t, []string{"cli", "-a", "http://vault.local:9090"})

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://vault.local:9090", c.ServerAddr)
}

func TestLoadConfig_JSONOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_addr": "http://json.local:8081"}`), 0o600))
	resetArgs(t, []string{"cli", "-config", path})

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://json.local:8081", c.ServerAddr)
}

func TestLoadConfig_FlagBeatsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_addr": "http://json.local:8081"}`), 0o600))
	resetArgs(t, []string{"cli", "-config", path, "-a", "http://flag.local:8082"})

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://flag.local:8082", c.ServerAddr)
}

func TestLoadConfig_MissingJSONFile(t *testing.T) {
	resetArgs(t, []string{"cli", "-config", filepath.Join(t.TempDir(), "absent.json")})

	_, err := LoadConfig()
	require.Error(t, err)
}
