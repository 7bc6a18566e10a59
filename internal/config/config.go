package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration.
type Config struct {
	RulesPath   string
	DatabaseURL string
	LibSQLToken string
	MetricsFile string
	Workers     int
	MaxBytes    int64
	Debug       bool
}

// LoadConfig loads configuration from environment variables, after merging
// a .env file from the working directory if one exists. Variables already
// set in the environment win over the file.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		RulesPath:   os.Getenv("NAMELINT_CONFIG"),
		DatabaseURL: os.Getenv("NAMELINT_DB"),
		LibSQLToken: os.Getenv("NAMELINT_LIBSQL_AUTH_TOKEN"),
		MetricsFile: os.Getenv("NAMELINT_METRICS_FILE"),
		Workers:     0,       // NumCPU
		MaxBytes:    1 << 20, // Default value
	}

	if workersStr := os.Getenv("NAMELINT_WORKERS"); workersStr != "" {
		if workers, err := strconv.Atoi(workersStr); err == nil && workers > 0 {
			cfg.Workers = workers
		}
	}

	if maxBytesStr := os.Getenv("NAMELINT_MAX_BYTES"); maxBytesStr != "" {
		if maxBytes, err := strconv.ParseInt(maxBytesStr, 10, 64); err == nil && maxBytes >= 0 {
			cfg.MaxBytes = maxBytes
		}
	}

	switch strings.ToLower(os.Getenv("NAMELINT_DEBUG")) {
	case "1", "true", "yes", "on":
		cfg.Debug = true
	}

	return cfg
}
