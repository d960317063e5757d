// Command kegg-names appends canonical KEGG names to tabular input.
//
// Usage:
//
//	kegg-names <kind> [options] < input.tsv
//
// This command reads tab-delimited rows from the standard input, resolves
// the identifier in the key column against the KEGG listing for the given
// kind, and writes each row back with the canonical name appended.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kegg-tools/KEGG-Go-SDK/api"
	"github.com/kegg-tools/KEGG-Go-SDK/internal/cli"
	"github.com/spf13/cobra"
)

var (
	clientOpts cli.ClientOptions
	colOpts    cli.ColOptions
	ioOpts     cli.IOOptions
)

var rootCmd = &cobra.Command{
	Use:   "kegg-names <kind>",
	Short: "Append canonical KEGG names to tabular input",
	Long: `This script reads tab-delimited rows from the standard input and
appends the canonical KEGG name of the identifier in the key column
(default: last column).

The kind is one of organism, gene, pathway, disease, drug, compound, and
selects the listing the identifiers are resolved against. Gene identifiers
require an organism code (--org). Identifiers may be raw references
("path:hsa04110", "dr:D00001") or bare; unknown identifiers get an empty
name and the row is kept.

Examples:

  # Append drug names to the last column of a file
  kegg-names drug < drugs.tsv

  # Resolve human gene identifiers in the second column
  kegg-names gene --org hsa --col 2 < genes.tsv

  # Headerless input
  kegg-names pathway --org hsa --nohead < pathways.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	cli.AddClientFlags(rootCmd, &clientOpts)
	cli.AddColFlags(rootCmd, &colOpts, 100)
	cli.AddIOFlags(rootCmd, &ioOpts)
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	kind, err := api.ParseKind(args[0])
	if err != nil {
		return err
	}

	client := clientOpts.NewClient()

	// Open input
	inFile, err := cli.OpenInput(ioOpts.Input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer inFile.Close()

	// Open output
	outFile, err := cli.OpenOutput(ioOpts.Output)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer outFile.Close()

	reader := cli.NewTabReader(inFile, !colOpts.NoHead)
	writer := cli.NewTabWriter(outFile)
	defer writer.Flush()

	// Read headers and find key column
	inputHeaders, err := reader.Headers()
	if err != nil {
		return fmt.Errorf("reading headers: %w", err)
	}

	keyCol, err := reader.FindColumn(colOpts.Col)
	if err != nil {
		return fmt.Errorf("finding key column: %w", err)
	}

	if inputHeaders != nil {
		outputHeaders := append([]string{}, inputHeaders...)
		outputHeaders = append(outputHeaders, string(kind)+".name")
		if err := writer.WriteHeaders(outputHeaders); err != nil {
			return fmt.Errorf("writing headers: %w", err)
		}
	}

	// Process in batches
	for {
		keys, rows, err := reader.ReadBatch(colOpts.BatchSize, keyCol)
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading batch: %w", err)
		}
		if len(keys) == 0 {
			break
		}

		for i, key := range keys {
			name, _, err := client.Name(ctx, kind, clientOpts.Organism, key)
			if err != nil {
				return err
			}

			outRow := append([]string{}, rows[i]...)
			outRow = append(outRow, name)
			if err := writer.WriteRow(outRow...); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
