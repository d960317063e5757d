// Command kegg-ddi reports drug-drug interaction profiles.
//
// Usage:
//
//	kegg-ddi [drugs...] [options]
//
// Drug identifiers come from the command line, or from a column of
// tab-delimited input with --col. Without identifiers every KEGG drug is
// queried. Each output row is one interaction of one profile.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/kegg-tools/KEGG-Go-SDK/internal/cli"
	"github.com/spf13/cobra"
)

var (
	clientOpts cli.ClientOptions
	colOpts    cli.ColOptions
	ioOpts     cli.IOOptions
	joinIDs    bool
)

var rootCmd = &cobra.Command{
	Use:   "kegg-ddi [drugs...]",
	Short: "Report KEGG drug-drug interaction profiles",
	Long: `This script reports drug-drug interaction profiles from KEGG.

Drug identifiers are given as arguments, or read from a column of
tab-delimited input with --col (-c). When no identifiers are given at all,
every KEGG drug is queried, one request per drug, with --concurrency
parallel fetches. With --join the given identifiers are sent as a single
joined request instead, which restricts the result to interactions among
them.

Each output row holds one interaction: the owning entry, the partner
entry, and whether the pair is labeled as a contraindication or a
precaution.

Examples:

  # Everything KEGG knows about two drugs
  kegg-ddi D00564 D00100

  # Only the interactions among a set
  kegg-ddi D00564 D00100 D00109 --join

  # Drugs named in the second column of a file
  kegg-ddi -c 2 -i drugs.tsv

  # The full interaction universe (slow)
  kegg-ddi`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	cli.AddClientFlags(rootCmd, &clientOpts)
	cli.AddColFlags(rootCmd, &colOpts, 100)
	cli.AddIOFlags(rootCmd, &ioOpts)
	rootCmd.Flags().BoolVar(&joinIDs, "join", false,
		"send all identifiers as one joined request")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client := clientOpts.NewClient()

	drugs := args
	fromInput := ioOpts.Input != "" || cmd.Flags().Changed("col")
	if fromInput {
		if len(args) > 0 {
			return fmt.Errorf("give drug identifiers as arguments or read them from input, not both")
		}
		var err error
		drugs, err = readKeys()
		if err != nil {
			return err
		}
	}

	outFile, err := cli.OpenOutput(ioOpts.Output)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer outFile.Close()

	writer := cli.NewTabWriter(outFile)
	defer writer.Flush()

	headers := []string{"id", "kind", "name", "partner", "partner_kind",
		"partner_name", "contraindication", "precaution"}
	if err := writer.WriteHeaders(headers); err != nil {
		return fmt.Errorf("writing headers: %w", err)
	}

	// Empty input means nothing to query, not the full universe
	if fromInput && len(drugs) == 0 {
		return nil
	}

	profiles, err := client.DrugInteractions(ctx, drugs, joinIDs)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := profiles[id]
		for _, in := range p.Interactions {
			err := writer.WriteRow(p.ID, string(p.Kind), p.Name,
				in.ID, string(in.Kind), in.Name,
				strconv.FormatBool(in.Contraindication),
				strconv.FormatBool(in.Precaution))
			if err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}

	return nil
}

// readKeys collects the key-column values of the tab-delimited input.
func readKeys() ([]string, error) {
	inFile, err := cli.OpenInput(ioOpts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer inFile.Close()

	reader := cli.NewTabReader(inFile, !colOpts.NoHead)

	_, err = reader.Headers()
	if err != nil {
		return nil, fmt.Errorf("reading headers: %w", err)
	}

	keyCol, err := reader.FindColumn(colOpts.Col)
	if err != nil {
		return nil, fmt.Errorf("finding key column: %w", err)
	}

	var all []string
	for {
		keys, _, err := reader.ReadBatch(colOpts.BatchSize, keyCol)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading batch: %w", err)
		}
		if len(keys) == 0 {
			break
		}
		all = append(all, keys...)
	}

	return all, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
