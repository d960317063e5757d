package api

import (
	"context"
	"fmt"
	"sort"
)

// IDSet is a set of identifiers in one namespace.
type IDSet map[string]bool

// Sorted returns the members of the set in lexical order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s IDSet) clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = true
	}
	return out
}

// convRule describes one namespace conversion direction: the remote
// argument order, which sides carry a namespace prefix to strip, and
// whether the conversion is organism-scoped.
type convRule struct {
	scoped      bool
	sourceSplit bool
	targetSplit bool
	args        func(org string) (target, source string)
}

// convRules is the dispatch table of supported conversion directions.
var convRules = map[string]convRule{
	"gene-ncbi": {
		scoped:      true,
		targetSplit: true,
		args:        func(org string) (string, string) { return "ncbi-geneid", org },
	},
	"ncbi-gene": {
		scoped:      true,
		sourceSplit: true,
		args:        func(org string) (string, string) { return org, "ncbi-geneid" },
	},
	"gene-uniprot": {
		scoped:      true,
		targetSplit: true,
		args:        func(org string) (string, string) { return "uniprot", org },
	},
	"uniprot-gene": {
		scoped:      true,
		sourceSplit: true,
		args:        func(org string) (string, string) { return org, "uniprot" },
	},
	"drug-chebi": {
		sourceSplit: true,
		targetSplit: true,
		args:        func(string) (string, string) { return "chebi", "drug" },
	},
	"chebi-drug": {
		sourceSplit: true,
		targetSplit: true,
		args:        func(string) (string, string) { return "drug", "chebi" },
	},
}

// ConvDirections lists the supported conversion direction names in display
// order.
var ConvDirections = []string{
	"gene-ncbi",
	"ncbi-gene",
	"gene-uniprot",
	"uniprot-gene",
	"drug-chebi",
	"chebi-drug",
}

// convTable returns the conversion cache for (direction, scope), building
// it on first use with a single "conv" fetch. The remote argument order is
// conv/<target>/<source>. Rows accumulate into sets; a key mapped by
// several rows keeps every value.
func (c *Client) convTable(ctx context.Context, direction, org string) (map[string]IDSet, error) {
	rule, ok := convRules[direction]
	if !ok {
		return nil, fmt.Errorf("unknown conversion direction %q", direction)
	}
	scope := ""
	if rule.scoped {
		if org == "" {
			return nil, fmt.Errorf("conversion %s requires an organism code", direction)
		}
		scope = org
	}

	key := "conv:" + direction + ":" + scope
	c.mu.Lock()
	table, ok := c.conv[key]
	c.mu.Unlock()
	if ok {
		return table, nil
	}

	v, err := c.cached(key, func() (any, error) {
		c.mu.Lock()
		table, ok := c.conv[key]
		c.mu.Unlock()
		if ok {
			return table, nil
		}

		target, source := rule.args(scope)
		rows, err := c.Fetch(ctx, "conv", target, source)
		if err != nil {
			return nil, fmt.Errorf("conversion %s: %w", direction, err)
		}

		table = make(map[string]IDSet, len(rows))
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			src, tgt := row[0], row[1]
			if rule.sourceSplit {
				src = bareRef(src)
			}
			if rule.targetSplit {
				tgt = bareRef(tgt)
			}
			set, ok := table[src]
			if !ok {
				set = make(IDSet)
				table[src] = set
			}
			set[tgt] = true
		}

		c.mu.Lock()
		c.conv[key] = table
		c.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]IDSet), nil
}

// convCopy returns a deep copy of a conversion table, keeping the cached
// table immutable.
func (c *Client) convCopy(ctx context.Context, direction, org string) (map[string]IDSet, error) {
	table, err := c.convTable(ctx, direction, org)
	if err != nil {
		return nil, err
	}
	out := make(map[string]IDSet, len(table))
	for k, set := range table {
		out[k] = set.clone()
	}
	return out, nil
}

// GeneToNCBI maps KEGG gene identifiers ("hsa:10458") of an organism to
// NCBI gene identifiers.
func (c *Client) GeneToNCBI(ctx context.Context, org string) (map[string]IDSet, error) {
	return c.convCopy(ctx, "gene-ncbi", org)
}

// NCBIToGene maps NCBI gene identifiers to KEGG gene identifiers of an
// organism.
func (c *Client) NCBIToGene(ctx context.Context, org string) (map[string]IDSet, error) {
	return c.convCopy(ctx, "ncbi-gene", org)
}

// GeneToUniProt maps KEGG gene identifiers of an organism to UniProt
// accessions.
func (c *Client) GeneToUniProt(ctx context.Context, org string) (map[string]IDSet, error) {
	return c.convCopy(ctx, "gene-uniprot", org)
}

// UniProtToGene maps UniProt accessions to KEGG gene identifiers of an
// organism.
func (c *Client) UniProtToGene(ctx context.Context, org string) (map[string]IDSet, error) {
	return c.convCopy(ctx, "uniprot-gene", org)
}

// DrugToChEBI maps KEGG drug identifiers to ChEBI identifiers. Both sides
// are bare identifiers; the mapping is not organism-scoped.
func (c *Client) DrugToChEBI(ctx context.Context) (map[string]IDSet, error) {
	return c.convCopy(ctx, "drug-chebi", "")
}

// ChEBIToDrug maps ChEBI identifiers to KEGG drug identifiers.
func (c *Client) ChEBIToDrug(ctx context.Context) (map[string]IDSet, error) {
	return c.convCopy(ctx, "chebi-drug", "")
}
