package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/authvault/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish an absent key from a zero value so that partial
// files overlay only what they mention.
type jsonConfig struct {
	ServerAddr *string `json:"server_addr"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c or -config flag. When neither flag is present it is a no-op.
func parseJSON(cfg *Config) error {
	path := flagx.JSONConfigFile()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if jc.ServerAddr != nil {
		cfg.ServerAddr = *jc.ServerAddr
	}
	return nil
}
