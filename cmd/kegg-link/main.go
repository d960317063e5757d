// Command kegg-link resolves the relations between two KEGG entity kinds.
//
// Usage:
//
//	kegg-link <source> <target> [options]
//
// Each output row holds one relation, with identifier, canonical name, and
// cross-reference columns for both sides. Gene sides carry NCBI gene and
// UniProt columns, drug sides a ChEBI column.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kegg-tools/KEGG-Go-SDK/api"
	"github.com/kegg-tools/KEGG-Go-SDK/internal/cli"
	"github.com/spf13/cobra"
)

var (
	clientOpts cli.ClientOptions
	ioOpts     cli.IOOptions
)

var rootCmd = &cobra.Command{
	Use:   "kegg-link <source> <target>",
	Short: "Resolve relations between two KEGG entity kinds",
	Long: `This script resolves the pairwise relations between two KEGG entity
kinds and writes one tab-delimited row per relation.

Source and target are entity kinds: gene, pathway, disease, drug. Each side
contributes an identifier column and a canonical-name column; gene sides add
NCBI gene and UniProt cross-reference columns, drug sides a ChEBI column.
Multi-valued columns are joined with the --delim delimiter. When either
side is organism-scoped (gene, pathway) an organism code (--org) is
required for the gene side and restricts the pathway side.

Examples:

  # Human gene/pathway relations
  kegg-link gene pathway --org hsa

  # Drugs per pathway, ChEBI references semicolon-joined
  kegg-link pathway drug --delim semi

  # Disease/gene relations for mouse
  kegg-link disease gene --org mmu`,
	Args: cobra.ExactArgs(2),
	RunE: run,
}

func init() {
	cli.AddClientFlags(rootCmd, &clientOpts)
	cli.AddIOFlags(rootCmd, &ioOpts)
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	source, err := api.ParseKind(args[0])
	if err != nil {
		return err
	}
	target, err := api.ParseKind(args[1])
	if err != nil {
		return err
	}

	client := clientOpts.NewClient()

	relations, err := client.Relations(ctx, source, target, clientOpts.Organism)
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

	headers := append(sideHeaders(source), sideHeaders(target)...)
	if err := writer.WriteHeaders(headers); err != nil {
		return fmt.Errorf("writing headers: %w", err)
	}

	delim := ioOpts.GetDelimiter()

	for _, rel := range relations {
		row := append(sideFields(rel.Source, delim), sideFields(rel.Target, delim)...)
		if err := writer.WriteRow(row...); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	return nil
}

// sideHeaders returns the output columns contributed by one relation side.
func sideHeaders(kind api.Kind) []string {
	headers := []string{string(kind) + ".id", string(kind) + ".name"}
	switch kind {
	case api.KindGene:
		headers = append(headers, string(kind)+".ncbi_gene_ids", string(kind)+".uniprot_ids")
	case api.KindDrug:
		headers = append(headers, string(kind)+".chebi_ids")
	}
	return headers
}

// sideFields formats one resolved entity into its output columns.
func sideFields(e api.Entity, delim string) []string {
	fields := []string{e.ID, e.Name}
	switch e.Kind {
	case api.KindGene:
		fields = append(fields, cli.FormatSet(e.NCBIGeneIDs, delim), cli.FormatSet(e.UniProtIDs, delim))
	case api.KindDrug:
		fields = append(fields, cli.FormatSet(e.ChEBIIDs, delim))
	}
	return fields
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
