package cli

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kegg-tools/KEGG-Go-SDK/api"
	"github.com/spf13/cobra"
)

func TestAddClientFlags(t *testing.T) {
	clearConfigEnv(t)

	cmd := &cobra.Command{}
	opts := &ClientOptions{}

	AddClientFlags(cmd, opts)

	// Check that all flags were added
	flags := []string{"url", "org", "timeout", "max-retries", "concurrency", "debug"}
	for _, name := range flags {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q not found", name)
		}
	}

	// Flag defaults come from the resolved configuration
	if opts.BaseURL != api.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", opts.BaseURL, api.DefaultBaseURL)
	}
	if opts.MaxRetries != api.DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", opts.MaxRetries, api.DefaultMaxRetries)
	}
	if opts.Concurrency != api.DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", opts.Concurrency, api.DefaultConcurrency)
	}
	if opts.Timeout != 30 {
		t.Errorf("Timeout = %d, want 30", opts.Timeout)
	}
	if opts.Organism != "" {
		t.Errorf("Organism = %q, want empty", opts.Organism)
	}
}

func TestAddClientFlags_EnvDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("KEGG_ORGANISM", "mmu")
	t.Setenv("KEGG_MAX_RETRIES", "1")

	cmd := &cobra.Command{}
	opts := &ClientOptions{}

	AddClientFlags(cmd, opts)

	if opts.Organism != "mmu" {
		t.Errorf("Organism = %q, want %q", opts.Organism, "mmu")
	}
	if opts.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want 1", opts.MaxRetries)
	}
}

func TestClientOptions_NewClient(t *testing.T) {
	opts := &ClientOptions{
		BaseURL:     "https://kegg.example.test",
		Timeout:     5,
		MaxRetries:  2,
		Concurrency: 8,
	}

	client := opts.NewClient()

	if client.BaseURL != "https://kegg.example.test" {
		t.Errorf("BaseURL = %q, want %q", client.BaseURL, "https://kegg.example.test")
	}
	if client.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", client.MaxRetries)
	}
	if client.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", client.Concurrency)
	}
	if client.Logger == nil {
		t.Error("Logger should not be nil")
	}
	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("HTTPClient.Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}
}

func TestClientOptions_NewLogger(t *testing.T) {
	opts := &ClientOptions{}
	if got := opts.NewLogger().GetLevel(); got != log.InfoLevel {
		t.Errorf("level = %v, want info", got)
	}

	opts = &ClientOptions{Debug: true}
	if got := opts.NewLogger().GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
}

func TestAddColFlags(t *testing.T) {
	cmd := &cobra.Command{}
	opts := &ColOptions{}

	AddColFlags(cmd, opts, 200)

	// Check flags
	if cmd.Flags().Lookup("col") == nil {
		t.Error("col flag not found")
	}
	if cmd.Flags().Lookup("batchSize") == nil {
		t.Error("batchSize flag not found")
	}
	if cmd.Flags().Lookup("nohead") == nil {
		t.Error("nohead flag not found")
	}

	// Check default batch size
	if opts.BatchSize != 200 {
		t.Errorf("BatchSize = %d, want 200", opts.BatchSize)
	}
}

func TestAddIOFlags(t *testing.T) {
	cmd := &cobra.Command{}
	opts := &IOOptions{}

	AddIOFlags(cmd, opts)

	// Check flags
	if cmd.Flags().Lookup("input") == nil {
		t.Error("input flag not found")
	}
	if cmd.Flags().Lookup("output") == nil {
		t.Error("output flag not found")
	}
	if cmd.Flags().Lookup("delim") == nil {
		t.Error("delim flag not found")
	}

	// Check default delimiter
	if opts.Delim != "::" {
		t.Errorf("Delim = %q, want %q", opts.Delim, "::")
	}
}
