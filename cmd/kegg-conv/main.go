// Command kegg-conv dumps a KEGG namespace conversion table.
//
// Usage:
//
//	kegg-conv <direction> [options]
//
// The direction names the source and target namespace, e.g. gene-ncbi or
// chebi-drug. Gene directions require an organism code (--org).
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
)

var (
	clientOpts cli.ClientOptions
	ioOpts     cli.IOOptions
)

var rootCmd = &cobra.Command{
	Use:   "kegg-conv <direction>",
	Short: "Dump a KEGG namespace conversion table",
	Long: `This script dumps an identifier conversion table between a KEGG
namespace and an outside namespace as tab-delimited rows.

The direction is one of gene-ncbi, ncbi-gene, gene-uniprot, uniprot-gene,
drug-chebi, chebi-drug. Each row holds a source identifier and every target
identifier it maps to, joined with the --delim delimiter. Gene directions
are organism-scoped and require --org.

Examples:

  # Human genes to NCBI gene numbers
  kegg-conv gene-ncbi --org hsa

  # UniProt accessions to mouse genes
  kegg-conv uniprot-gene --org mmu

  # Drugs to ChEBI, comma-joined
  kegg-conv drug-chebi --delim comma`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	cli.AddClientFlags(rootCmd, &clientOpts)
	cli.AddIOFlags(rootCmd, &ioOpts)
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	direction := args[0]
	client := clientOpts.NewClient()

	var table map[string]api.IDSet
	var err error
	switch direction {
	case "gene-ncbi":
		table, err = client.GeneToNCBI(ctx, clientOpts.Organism)
	case "ncbi-gene":
		table, err = client.NCBIToGene(ctx, clientOpts.Organism)
	case "gene-uniprot":
		table, err = client.GeneToUniProt(ctx, clientOpts.Organism)
	case "uniprot-gene":
		table, err = client.UniProtToGene(ctx, clientOpts.Organism)
	case "drug-chebi":
		table, err = client.DrugToChEBI(ctx)
	case "chebi-drug":
		table, err = client.ChEBIToDrug(ctx)
	default:
		return fmt.Errorf("unknown direction %q (choose from %s)",
			direction, strings.Join(api.ConvDirections, ", "))
	}
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

	from, to, _ := strings.Cut(direction, "-")
	if err := writer.WriteHeaders([]string{from, to}); err != nil {
		return fmt.Errorf("writing headers: %w", err)
	}

	delim := ioOpts.GetDelimiter()

	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := writer.WriteRow(id, cli.FormatSet(table[id], delim)); err != nil {
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
