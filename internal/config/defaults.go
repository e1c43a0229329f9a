package config

import "github.com/bobmcallan/allocation-lab/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "dev",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		API: APIConfig{
			URL:            "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
			MaxEntries: 256,
		},
		Charts: ChartsConfig{
			Width:  800,
			Height: 450,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console"},
			FilePath:   "logs/allocation-lab.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}
