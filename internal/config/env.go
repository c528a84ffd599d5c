package config

import (
	"os"
	"strings"
)

// FromEnv applies environment overrides on top of the loaded config.
// Falls back to the existing values if variables are not set.
func (c *Config) FromEnv() {
	if addr := strings.TrimSpace(os.Getenv("TRACKER_ADDR")); addr != "" {
		c.Server.Addr = addr
	}
	if dir := strings.TrimSpace(os.Getenv("TRACKER_DATA_DIR")); dir != "" {
		c.Storage.DataDir = dir
	}
}
