package cli

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/kegg-tools/KEGG-Go-SDK/api"
	"gopkg.in/yaml.v3"
)

// Config holds client settings resolved from the defaults, the optional
// config file, and the environment, in increasing order of priority.
// Command-line flags override all of these because AddClientFlags uses the
// resolved values as flag defaults.
type Config struct {
	// BaseURL is the KEGG REST API endpoint
	BaseURL string `yaml:"base_url"`

	// Organism is the default KEGG organism code
	Organism string `yaml:"organism"`

	// Timeout is the HTTP request timeout in seconds
	Timeout int `yaml:"timeout"`

	// MaxRetries is the maximum number of retries for failed requests
	MaxRetries int `yaml:"max_retries"`

	// Concurrency is the number of parallel fetches in fan-out operations
	Concurrency int `yaml:"concurrency"`

	// Debug enables debug output (environment only)
	Debug bool `yaml:"-"`
}

// ResolveConfig resolves the client configuration. It starts from built-in
// defaults, overlays the optional config file, then overlays KEGG_*
// environment variables. A .env file in the working directory can supply
// the environment variables. A missing or malformed config file is ignored.
func ResolveConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:     api.DefaultBaseURL,
		Timeout:     30,
		MaxRetries:  api.DefaultMaxRetries,
		Concurrency: api.DefaultConcurrency,
	}

	if file := loadConfigFile(DefaultConfigPath()); file != nil {
		cfg.merge(file)
	}
	cfg.applyEnv()

	return cfg
}

// loadConfigFile reads and parses a YAML config file. A missing, unreadable,
// or malformed file yields nil.
func loadConfigFile(path string) *Config {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil
	}
	return &cfg
}

// merge overlays the set fields of o onto c. Zero values do not override.
func (c *Config) merge(o *Config) {
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Organism != "" {
		c.Organism = o.Organism
	}
	if o.Timeout > 0 {
		c.Timeout = o.Timeout
	}
	if o.MaxRetries > 0 {
		c.MaxRetries = o.MaxRetries
	}
	if o.Concurrency > 0 {
		c.Concurrency = o.Concurrency
	}
}

// applyEnv overlays KEGG_* environment variables onto c. Unset or
// unparseable variables leave the current value in place.
func (c *Config) applyEnv() {
	if v := os.Getenv("KEGG_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("KEGG_ORGANISM"); v != "" {
		c.Organism = v
	}
	if v := os.Getenv("KEGG_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Timeout = n
		}
	}
	if v := os.Getenv("KEGG_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("KEGG_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Concurrency = n
		}
	}
	if v := os.Getenv("KEGG_DEBUG"); v == "true" || v == "1" {
		c.Debug = true
	}
}

// getHomeDir returns the user's home directory, handling Windows compatibility.
func getHomeDir() string {
	// Try HOME first (works on Unix and some Windows configs)
	if home := os.Getenv("HOME"); home != "" {
		return home
	}

	// Windows-specific fallbacks
	if profile := os.Getenv("USERPROFILE"); profile != "" {
		return profile
	}

	if drive := os.Getenv("HOMEDRIVE"); drive != "" {
		if path := os.Getenv("HOMEPATH"); path != "" {
			return filepath.Join(drive, path)
		}
	}

	return ""
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	home := getHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".kegg-sdk.yaml")
}
