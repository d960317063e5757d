// Package cli provides utilities for building KEGG command-line tools.
//
// This package provides standardized option handling, tab-delimited I/O,
// and configuration resolution shared by the kegg-* pipeline tools.
package cli

import (
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kegg-tools/KEGG-Go-SDK/api"
	"github.com/spf13/cobra"
)

// ClientOptions contains the standard client connection options.
type ClientOptions struct {
	// BaseURL is the KEGG REST API endpoint
	BaseURL string

	// Organism is the KEGG organism code for organism-scoped operations
	Organism string

	// Timeout is the HTTP request timeout in seconds
	Timeout int

	// MaxRetries is the maximum number of retries for failed requests
	MaxRetries int

	// Concurrency is the number of parallel fetches in fan-out operations
	Concurrency int

	// Debug enables debug output
	Debug bool
}

// AddClientFlags adds the standard client flags to a cobra command.
// Flag defaults come from the resolved configuration, so values from the
// environment or the config file apply unless overridden on the command line.
func AddClientFlags(cmd *cobra.Command, opts *ClientOptions) {
	cfg := ResolveConfig()

	flags := cmd.Flags()

	flags.StringVar(&opts.BaseURL, "url", cfg.BaseURL,
		"KEGG REST API base URL")
	flags.StringVar(&opts.Organism, "org", cfg.Organism,
		"KEGG organism code (e.g. hsa)")
	flags.IntVar(&opts.Timeout, "timeout", cfg.Timeout,
		"HTTP request timeout in seconds")
	flags.IntVar(&opts.MaxRetries, "max-retries", cfg.MaxRetries,
		"maximum number of retries for failed requests")
	flags.IntVar(&opts.Concurrency, "concurrency", cfg.Concurrency,
		"number of parallel fetches in fan-out operations")
	flags.BoolVar(&opts.Debug, "debug", cfg.Debug,
		"enable debug output")
}

// NewLogger creates a stderr logger honoring the debug setting.
func (o *ClientOptions) NewLogger() *log.Logger {
	level := log.InfoLevel
	if o.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// NewClient creates a KEGG API client from the options.
func (o *ClientOptions) NewClient() *api.Client {
	clientOpts := []api.ClientOption{
		api.WithBaseURL(o.BaseURL),
		api.WithMaxRetries(o.MaxRetries),
		api.WithConcurrency(o.Concurrency),
		api.WithLogger(o.NewLogger()),
	}
	if o.Timeout > 0 {
		clientOpts = append(clientOpts, api.WithHTTPClient(&http.Client{
			Timeout: time.Duration(o.Timeout) * time.Second,
		}))
	}
	return api.NewClient(clientOpts...)
}

// ColOptions contains column selection options for input processing.
type ColOptions struct {
	// Col is the key column (1-based index or header name, 0 = last column)
	Col string

	// BatchSize is the number of rows to process at a time
	BatchSize int

	// NoHead indicates the input has no header row
	NoHead bool
}

// AddColFlags adds the column selection flags to a cobra command.
func AddColFlags(cmd *cobra.Command, opts *ColOptions, defaultBatchSize int) {
	if defaultBatchSize <= 0 {
		defaultBatchSize = 100
	}

	flags := cmd.Flags()

	flags.StringVarP(&opts.Col, "col", "c", "0",
		"key column (1-based index or header name, 0 = last)")
	flags.IntVarP(&opts.BatchSize, "batchSize", "b", defaultBatchSize,
		"number of rows to process at a time")
	flags.BoolVar(&opts.NoHead, "nohead", false,
		"input file has no header row")
}

// IOOptions contains input/output options.
type IOOptions struct {
	// Input is the input file path (empty = stdin)
	Input string

	// Output is the output file path (empty = stdout)
	Output string

	// Delim is the delimiter for multi-valued fields
	Delim string
}

// AddIOFlags adds the I/O flags to a cobra command.
func AddIOFlags(cmd *cobra.Command, opts *IOOptions) {
	flags := cmd.Flags()

	flags.StringVarP(&opts.Input, "input", "i", "",
		"input file (default: stdin)")
	flags.StringVarP(&opts.Output, "output", "o", "",
		"output file (default: stdout)")
	flags.StringVar(&opts.Delim, "delim", "::",
		"delimiter for multi-valued fields (::, tab, space, semi, comma)")
}

// GetDelimiter returns the actual delimiter string.
func (o *IOOptions) GetDelimiter() string {
	switch o.Delim {
	case "tab":
		return "\t"
	case "space":
		return " "
	case "semi":
		return "; "
	case "comma":
		return ","
	default:
		return o.Delim
	}
}
