// Command kegg-list dumps a KEGG entity listing as tab-delimited rows.
//
// Usage:
//
//	kegg-list <kind> [options]
//
// The kind is one of organism, gene, pathway, disease, drug, compound.
// Gene listings require an organism code (--org).
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/kegg-tools/KEGG-Go-SDK/api"
	"github.com/kegg-tools/KEGG-Go-SDK/internal/cli"
	"github.com/spf13/cobra"
)

var (
	clientOpts cli.ClientOptions
	ioOpts     cli.IOOptions
)

var rootCmd = &cobra.Command{
	Use:   "kegg-list <kind>",
	Short: "Dump a KEGG entity listing",
	Long: `This script dumps a KEGG entity listing as tab-delimited rows of
identifier and canonical name.

The kind is one of organism, gene, pathway, disease, drug, compound.
Gene listings require an organism code (--org); pathway listings are
restricted to an organism when one is given; the other kinds are global.

Examples:

  # All KEGG drugs
  kegg-list drug

  # Human genes
  kegg-list gene --org hsa

  # Human pathways into a file
  kegg-list pathway --org hsa -o pathways.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	cli.AddClientFlags(rootCmd, &clientOpts)
	cli.AddIOFlags(rootCmd, &ioOpts)
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	kind, err := api.ParseKind(args[0])
	if err != nil {
		return err
	}

	client := clientOpts.NewClient()

	listing, err := client.List(ctx, kind, clientOpts.Organism)
	if err != nil {
		return err
	}

	outFile, err := cli.OpenOutput(ioOpts.Output)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer outFile.Close()

	writer := cli.NewTabWriter(outFile)
	defer writer.Flush()

	if err := writer.WriteHeaders([]string{"id", "name"}); err != nil {
		return fmt.Errorf("writing headers: %w", err)
	}

	ids := make([]string, 0, len(listing))
	for id := range listing {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := writer.WriteRow(id, listing[id]); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
