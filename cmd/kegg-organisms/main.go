// Command kegg-organisms lists the organisms known to KEGG.
//
// Usage:
//
//	kegg-organisms [options]
//
// By default the organism codes are printed in columns when stdout is a
// terminal and one per line otherwise. The --long option prints a
// tab-delimited code/name listing instead.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kegg-tools/KEGG-Go-SDK/api"
	"github.com/kegg-tools/KEGG-Go-SDK/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	clientOpts cli.ClientOptions
	longFormat bool
	oneColumn  bool
)

var rootCmd = &cobra.Command{
	Use:   "kegg-organisms",
	Short: "List KEGG organisms",
	Long: `This script lists the organisms known to KEGG.

By default the organism codes are printed in columns when the output is a
terminal, one per line otherwise. With --long (-l) each line holds the
organism code and its name, tab-delimited.

Examples:

  # Browse the organism codes
  kegg-organisms

  # Tab-delimited code/name listing
  kegg-organisms -l

  # Feed organism codes to another tool
  kegg-organisms | head -3`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	cli.AddClientFlags(rootCmd, &clientOpts)
	rootCmd.Flags().BoolVarP(&longFormat, "long", "l", false, "show organism names")
	rootCmd.Flags().BoolVarP(&oneColumn, "one-column", "1", false, "show results in one column")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client := clientOpts.NewClient()

	organisms, err := client.List(ctx, api.KindOrganism, "")
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(organisms))
	for code := range organisms {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	if longFormat {
		writer := cli.NewTabWriter(os.Stdout)
		defer writer.Flush()
		for _, code := range codes {
			if err := writer.WriteRow(code, organisms[code]); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
		return nil
	}

	// If not a terminal, use one-column output
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		oneColumn = true
	}

	if oneColumn {
		for _, code := range codes {
			fmt.Println(code)
		}
		return nil
	}

	printColumns(codes)
	return nil
}

// printColumns prints codes in as many columns as the terminal width allows.
func printColumns(codes []string) {
	if len(codes) == 0 {
		return
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	maxLen := 0
	for _, code := range codes {
		if len(code) > maxLen {
			maxLen = len(code)
		}
	}

	gutter := 3
	colWidth := maxLen + gutter
	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}

	rows := (len(codes) + cols - 1) / cols

	for r := 0; r < rows; r++ {
		var line strings.Builder
		for c := 0; c < cols; c++ {
			idx := c*rows + r
			if idx >= len(codes) {
				break
			}
			code := codes[idx]
			line.WriteString(code)
			if c < cols-1 && idx+rows < len(codes) {
				// Add padding
				padding := colWidth - len(code)
				for i := 0; i < padding; i++ {
					line.WriteByte(' ')
				}
			}
		}
		fmt.Println(line.String())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
