package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/authvault/internal/flagx"
	"github.com/dmitrijs2005/authvault/internal/timex"
)

// jsonConfig mirrors Config for JSON unmarshalling. Interval fields use
// timex.Duration so both "24h" strings and integer nanoseconds parse.
// Pointer fields distinguish "absent" from "zero value" so the file only
// overrides what it actually sets.
type jsonConfig struct {
	EndpointAddr          *string         `json:"endpoint_addr"`
	StorageBackend        *string         `json:"storage_backend"`
	UsersFilePath         *string         `json:"users_file"`
	StoreFailOpen         *bool           `json:"store_fail_open"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	S3RootUser            *string         `json:"s3_root_user"`
	S3RootPassword        *string         `json:"s3_root_password"`
	S3Bucket              *string         `json:"s3_bucket"`
	S3Region              *string         `json:"s3_region"`
	S3BaseEndpoint        *string         `json:"s3_base_endpoint"`
	S3ObjectKey           *string         `json:"s3_object_key"`
}

// parseJSON overlays values from the JSON file named by the -c/-config flag,
// if any, onto config.
func parseJSON(config *Config) error {
	path := flagx.JSONConfigFile()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.UsersFilePath, c.UsersFilePath)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3ObjectKey, c.S3ObjectKey)

	if c.StoreFailOpen != nil {
		config.StoreFailOpen = *c.StoreFailOpen
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}

	return nil
}
