package api

import (
	"context"
	"fmt"
)

// Entity is one resolved side of a relation: a bare identifier enriched
// with its canonical name and cross-references.
type Entity struct {
	ID   string
	Name string // empty when the identifier is absent from its listing
	Kind Kind

	// NCBIGeneIDs and UniProtIDs are populated for genes, ChEBIIDs for
	// drugs. Sets not applicable to the kind are nil, which reads as the
	// empty set.
	NCBIGeneIDs IDSet
	UniProtIDs  IDSet
	ChEBIIDs    IDSet
}

// Relation is one resolved link row, source and target in the public
// argument order.
type Relation struct {
	Source Entity
	Target Entity
}

// linkArg returns the remote namespace argument for a kind: the organism
// code for genes, the kind name otherwise.
func linkArg(kind Kind, org string) (string, error) {
	if kind == KindGene {
		if org == "" {
			return "", fmt.Errorf("gene relations require an organism code")
		}
		return org, nil
	}
	return string(kind), nil
}

// sideResolver resolves raw references of one relation side. It holds the
// entity listing of the side's kind plus the conversion tables that enrich
// it, all built before row processing starts.
type sideResolver struct {
	kind    Kind
	refKey  func(string) string
	names   map[string]string
	ncbi    map[string]IDSet
	uniprot map[string]IDSet
	chebi   map[string]IDSet
}

func (c *Client) sideResolver(ctx context.Context, kind Kind, org string) (*sideResolver, error) {
	names, err := c.entityTable(ctx, kind, org)
	if err != nil {
		return nil, err
	}
	r := &sideResolver{
		kind:   kind,
		refKey: kindRules[kind].refKey,
		names:  names,
	}
	switch kind {
	case KindGene:
		if r.ncbi, err = c.convTable(ctx, "gene-ncbi", org); err != nil {
			return nil, err
		}
		if r.uniprot, err = c.convTable(ctx, "gene-uniprot", org); err != nil {
			return nil, err
		}
	case KindDrug:
		if r.chebi, err = c.convTable(ctx, "drug-chebi", ""); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// resolve builds the enriched entity for one raw link reference. A
// reference absent from the listing still yields an entity, with an empty
// name.
func (r *sideResolver) resolve(ref string) Entity {
	key := r.refKey(ref)
	e := Entity{
		ID:   bareRef(ref),
		Name: r.names[key],
		Kind: r.kind,
	}
	if set, ok := r.ncbi[key]; ok {
		e.NCBIGeneIDs = set.clone()
	}
	if set, ok := r.uniprot[key]; ok {
		e.UniProtIDs = set.clone()
	}
	if set, ok := r.chebi[key]; ok {
		e.ChEBIIDs = set.clone()
	}
	return e
}

// Relations fetches the link relation between two entity kinds and
// resolves every row into an enriched source/target pair, preserving row
// order. The remote endpoint addresses links as link/<target>/<source>,
// reversed relative to this signature, and addresses per-organism gene
// namespaces by organism code; both conventions are applied here. Rows
// with fewer than two fields are dropped.
func (c *Client) Relations(ctx context.Context, source, target Kind, org string) ([]Relation, error) {
	sourceArg, err := linkArg(source, org)
	if err != nil {
		return nil, err
	}
	targetArg, err := linkArg(target, org)
	if err != nil {
		return nil, err
	}

	rows, err := c.Fetch(ctx, "link", targetArg, sourceArg)
	if err != nil {
		return nil, fmt.Errorf("linking %s to %s: %w", source, target, err)
	}

	sourceRes, err := c.sideResolver(ctx, source, org)
	if err != nil {
		return nil, err
	}
	targetRes, err := c.sideResolver(ctx, target, org)
	if err != nil {
		return nil, err
	}

	relations := make([]Relation, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		relations = append(relations, Relation{
			Source: sourceRes.resolve(row[0]),
			Target: targetRes.resolve(row[1]),
		})
	}
	return relations, nil
}

// GeneToPathway resolves the gene to pathway relation for an organism.
func (c *Client) GeneToPathway(ctx context.Context, org string) ([]Relation, error) {
	return c.Relations(ctx, KindGene, KindPathway, org)
}

// PathwayToGene resolves the pathway to gene relation for an organism.
func (c *Client) PathwayToGene(ctx context.Context, org string) ([]Relation, error) {
	return c.Relations(ctx, KindPathway, KindGene, org)
}

// GeneToDrug resolves the gene to drug relation for an organism.
func (c *Client) GeneToDrug(ctx context.Context, org string) ([]Relation, error) {
	return c.Relations(ctx, KindGene, KindDrug, org)
}

// DrugToGene resolves the drug to gene relation for an organism.
func (c *Client) DrugToGene(ctx context.Context, org string) ([]Relation, error) {
	return c.Relations(ctx, KindDrug, KindGene, org)
}

// GeneToDisease resolves the gene to disease relation for an organism.
func (c *Client) GeneToDisease(ctx context.Context, org string) ([]Relation, error) {
	return c.Relations(ctx, KindGene, KindDisease, org)
}

// DiseaseToGene resolves the disease to gene relation for an organism.
func (c *Client) DiseaseToGene(ctx context.Context, org string) ([]Relation, error) {
	return c.Relations(ctx, KindDisease, KindGene, org)
}

// PathwayToDrug resolves the pathway to drug relation.
func (c *Client) PathwayToDrug(ctx context.Context) ([]Relation, error) {
	return c.Relations(ctx, KindPathway, KindDrug, "")
}

// DrugToPathway resolves the drug to pathway relation.
func (c *Client) DrugToPathway(ctx context.Context) ([]Relation, error) {
	return c.Relations(ctx, KindDrug, KindPathway, "")
}

// PathwayToDisease resolves the pathway to disease relation.
func (c *Client) PathwayToDisease(ctx context.Context) ([]Relation, error) {
	return c.Relations(ctx, KindPathway, KindDisease, "")
}

// DiseaseToPathway resolves the disease to pathway relation.
func (c *Client) DiseaseToPathway(ctx context.Context) ([]Relation, error) {
	return c.Relations(ctx, KindDisease, KindPathway, "")
}

// DiseaseToDrug resolves the disease to drug relation.
func (c *Client) DiseaseToDrug(ctx context.Context) ([]Relation, error) {
	return c.Relations(ctx, KindDisease, KindDrug, "")
}

// DrugToDisease resolves the drug to disease relation.
func (c *Client) DrugToDisease(ctx context.Context) ([]Relation, error) {
	return c.Relations(ctx, KindDrug, KindDisease, "")
}
