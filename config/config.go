package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultChunkSize is the number of bytes the file server streams per
// chunk when the config does not override it (200 KiB).
const DefaultChunkSize = 200 * 1024

// LoadConfig loads the configuration from the specified YAML file
func LoadConfig(configPath string) (*Config, error) {
	// Ensure the config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	// Parse the YAML
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Validate and set defaults
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation error: %v", err)
	}

	return config, nil
}

func validateConfig(config *Config) error {
	// The document root is the one setting with no sensible default
	if config.Server.DocumentRoot == "" {
		return fmt.Errorf("server.documentRoot must be set")
	}
	if err := os.MkdirAll(config.Server.DocumentRoot, 0755); err != nil {
		return fmt.Errorf("failed to create document root %s: %v", config.Server.DocumentRoot, err)
	}

	// Set defaults if not specified
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Server.IndexFile == "" {
		config.Server.IndexFile = "index.html"
	}

	if config.Server.ChunkSize == 0 {
		config.Server.ChunkSize = DefaultChunkSize
	}
	if config.Server.ChunkSize < 0 {
		return fmt.Errorf("server.chunkSize must be positive, got %d", config.Server.ChunkSize)
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}
