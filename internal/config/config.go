package config

import (
	"os"
	"strconv"

	"github.com/Mazzol/MVA/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Files    FileConfig
	Server   ServerConfig
	Database DatabaseConfig
}

// FileConfig holds default file names and sample counts for the CLI. The
// defaults mirror the conventional output names of the augmented sampling
// pipeline that produces the input files.
type FileConfig struct {
	Infile  string
	Outfile string
	NSets   int
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional run ledger connection
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it.
// DATABASE_URL is optional; persistence is only attempted when the caller
// asks for it.
func Load() (*Config, error) {
	cfg := &Config{
		Files: FileConfig{
			Infile:  getEnvOrDefault("MVA_INFILE", "model_output_augmented.out"),
			Outfile: getEnvOrDefault("MVA_OUTFILE", "sensitivity_indexes_augmented.out"),
			NSets:   getEnvIntOrDefault("MVA_NSETS", 10),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("MVA_SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	if cfg.Files.NSets < 1 {
		return nil, errors.ConfigInvalid("MVA_NSETS must be a positive integer")
	}
	if cfg.Files.Infile == "" || cfg.Files.Outfile == "" {
		return nil, errors.ConfigInvalid("MVA_INFILE and MVA_OUTFILE must not be empty")
	}
	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
