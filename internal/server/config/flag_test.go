package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	resetArgs(t, []string{
		"cmd",
		"-a", ":9191",
		"-storage", "s3",
		"-f", "/var/lib/authvault/users.json",
		"-d", "postgres://u:p@localhost/db",
		"-s", "cli-secret",
		"-t", "2h",
		"-cost", "12",
	})

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":9191", c.EndpointAddr)
	assert.Equal(t, StorageS3, c.StorageBackend)
	assert.Equal(t, "/var/lib/authvault/users.json", c.UsersFilePath)
	assert.Equal(t, "postgres://u:p@localhost/db", c.DatabaseDSN)
	assert.Equal(t, "cli-secret", c.SecretKey)
	assert.Equal(t, 2*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, 12, c.BcryptCost)
}

func TestParseFlags_UnknownFlagsIgnored(t *testing.T) {
	resetArgs(t, []string{"cmd", "-c", "conf.json", "-a", ":6060", "-unknown", "x"})

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":6060", c.EndpointAddr)
}
