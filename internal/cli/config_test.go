package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kegg-tools/KEGG-Go-SDK/api"
)

// clearConfigEnv points HOME at an empty directory and unsets the KEGG_*
// variables so tests see only the values they set themselves.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{
		"KEGG_BASE_URL", "KEGG_ORGANISM", "KEGG_TIMEOUT",
		"KEGG_MAX_RETRIES", "KEGG_CONCURRENCY", "KEGG_DEBUG",
	} {
		t.Setenv(name, "")
	}
}

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(os.Getenv("HOME"), ".kegg-sdk.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
}

func TestResolveConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg := ResolveConfig()

	if cfg.BaseURL != api.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, api.DefaultBaseURL)
	}
	if cfg.Organism != "" {
		t.Errorf("Organism = %q, want empty", cfg.Organism)
	}
	if cfg.Timeout != 30 {
		t.Errorf("Timeout = %d, want 30", cfg.Timeout)
	}
	if cfg.MaxRetries != api.DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, api.DefaultMaxRetries)
	}
	if cfg.Concurrency != api.DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, api.DefaultConcurrency)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestResolveConfig_File(t *testing.T) {
	clearConfigEnv(t)
	writeConfigFile(t, `base_url: https://kegg.example.test
organism: mmu
timeout: 5
max_retries: 1
concurrency: 2
`)

	cfg := ResolveConfig()

	if cfg.BaseURL != "https://kegg.example.test" {
		t.Errorf("BaseURL = %q, want file value", cfg.BaseURL)
	}
	if cfg.Organism != "mmu" {
		t.Errorf("Organism = %q, want %q", cfg.Organism, "mmu")
	}
	if cfg.Timeout != 5 {
		t.Errorf("Timeout = %d, want 5", cfg.Timeout)
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want 1", cfg.MaxRetries)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", cfg.Concurrency)
	}
}

func TestResolveConfig_PartialFile(t *testing.T) {
	clearConfigEnv(t)
	writeConfigFile(t, "organism: dme\n")

	cfg := ResolveConfig()

	// Unset file fields keep their defaults
	if cfg.Organism != "dme" {
		t.Errorf("Organism = %q, want %q", cfg.Organism, "dme")
	}
	if cfg.BaseURL != api.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.Timeout != 30 {
		t.Errorf("Timeout = %d, want 30", cfg.Timeout)
	}
}

func TestResolveConfig_EnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	writeConfigFile(t, "organism: mmu\nmax_retries: 1\n")
	t.Setenv("KEGG_ORGANISM", "hsa")
	t.Setenv("KEGG_CONCURRENCY", "16")

	cfg := ResolveConfig()

	if cfg.Organism != "hsa" {
		t.Errorf("Organism = %q, want env value %q", cfg.Organism, "hsa")
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want file value 1", cfg.MaxRetries)
	}
	if cfg.Concurrency != 16 {
		t.Errorf("Concurrency = %d, want env value 16", cfg.Concurrency)
	}
}

func TestResolveConfig_MalformedFile(t *testing.T) {
	clearConfigEnv(t)
	writeConfigFile(t, "{not yaml: [")

	cfg := ResolveConfig()

	if cfg.BaseURL != api.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default after malformed file", cfg.BaseURL)
	}
}

func TestResolveConfig_BadEnvNumbers(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("KEGG_TIMEOUT", "soon")
	t.Setenv("KEGG_CONCURRENCY", "-3")

	cfg := ResolveConfig()

	if cfg.Timeout != 30 {
		t.Errorf("Timeout = %d, want default after bad value", cfg.Timeout)
	}
	if cfg.Concurrency != api.DefaultConcurrency {
		t.Errorf("Concurrency = %d, want default after bad value", cfg.Concurrency)
	}
}

func TestResolveConfig_Debug(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("KEGG_DEBUG", "1")

	if cfg := ResolveConfig(); !cfg.Debug {
		t.Error("KEGG_DEBUG=1 should enable debug")
	}

	t.Setenv("KEGG_DEBUG", "true")
	if cfg := ResolveConfig(); !cfg.Debug {
		t.Error("KEGG_DEBUG=true should enable debug")
	}

	t.Setenv("KEGG_DEBUG", "no")
	if cfg := ResolveConfig(); cfg.Debug {
		t.Error("KEGG_DEBUG=no should not enable debug")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/kegg")

	want := filepath.Join("/home/kegg", ".kegg-sdk.yaml")
	if got := DefaultConfigPath(); got != want {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	if cfg := loadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); cfg != nil {
		t.Errorf("loadConfigFile on missing file = %+v, want nil", cfg)
	}
	if cfg := loadConfigFile(""); cfg != nil {
		t.Errorf("loadConfigFile on empty path = %+v, want nil", cfg)
	}
}
