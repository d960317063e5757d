package api

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies a KEGG entity namespace.
type Kind string

// Entity kinds with listings in the KEGG REST API.
const (
	KindOrganism Kind = "organism"
	KindGene     Kind = "gene"
	KindPathway  Kind = "pathway"
	KindDisease  Kind = "disease"
	KindDrug     Kind = "drug"
	KindCompound Kind = "compound"
)

// Kinds lists all entity kinds in display order.
var Kinds = []Kind{
	KindOrganism,
	KindGene,
	KindPathway,
	KindDisease,
	KindDrug,
	KindCompound,
}

// ParseKind maps a user-supplied name to an entity kind.
func ParseKind(name string) (Kind, error) {
	kind := Kind(strings.ToLower(name))
	if _, ok := kindRules[kind]; !ok {
		return "", fmt.Errorf("unknown entity kind %q", name)
	}
	return kind, nil
}

// kindRule describes one entity kind: how its listing is requested, how a
// raw listing row becomes a cache (key, value) pair, and how a reference to
// that kind is normalized into a cache key.
type kindRule struct {
	scoped   bool // listing requires an organism code
	listArgs func(scope string) []string
	key      func(row []string) (string, bool)
	value    func(row []string) (string, bool)
	refKey   func(ref string) string
}

// kindRules is the dispatch table from entity kind to its extraction rules.
var kindRules = map[Kind]kindRule{
	KindOrganism: {
		listArgs: func(string) []string { return []string{"organism"} },
		key:      column(1),
		value:    column(2),
		refKey:   identityRef,
	},
	KindGene: {
		scoped:   true,
		listArgs: func(scope string) []string { return []string{scope} },
		key:      column(0),
		value:    geneName,
		refKey:   identityRef,
	},
	KindPathway: {
		listArgs: func(scope string) []string {
			if scope == "" {
				return []string{"pathway"}
			}
			return []string{"pathway", scope}
		},
		key:    pathwayKey,
		value:  column(1),
		refKey: pathwayRef,
	},
	KindDisease:  splitRule("disease"),
	KindDrug:     splitRule("drug"),
	KindCompound: splitRule("compound"),
}

// splitRule builds the rule shared by the kinds whose listing identifiers
// carry a namespace prefix ("ds:", "dr:", "cpd:") that is stripped from the
// cache key.
func splitRule(database string) kindRule {
	return kindRule{
		listArgs: func(string) []string { return []string{database} },
		key:      splitKey,
		value:    column(1),
		refKey:   bareRef,
	}
}

// column returns an extraction rule selecting field i of a row.
func column(i int) func([]string) (string, bool) {
	return func(row []string) (string, bool) {
		if len(row) <= i {
			return "", false
		}
		return row[i], true
	}
}

// geneName extracts the canonical gene name from a gene listing row: the
// segment after the last semicolon of the final field, trimmed of spaces.
func geneName(row []string) (string, bool) {
	if len(row) < 2 {
		return "", false
	}
	name := row[len(row)-1]
	if i := strings.LastIndex(name, ";"); i >= 0 {
		name = name[i+1:]
	}
	return strings.Trim(name, " "), true
}

// splitKey strips the namespace prefix from row[0], e.g. "dr:D00001" -> "D00001".
func splitKey(row []string) (string, bool) {
	if len(row) < 2 {
		return "", false
	}
	return bareRef(row[0]), true
}

var rePathwayDigits = regexp.MustCompile(`\d+`)

// pathwayKey normalizes a raw pathway identifier to the canonical map form,
// e.g. "path:hsa04110" -> "map04110". Pathway prefixes other than "map"
// exist in KEGG; collapsing them all to "map" is the established behavior
// and kept as is.
func pathwayKey(row []string) (string, bool) {
	if len(row) < 2 {
		return "", false
	}
	if rePathwayDigits.FindString(row[0]) == "" {
		return "", false
	}
	return pathwayRef(row[0]), true
}

// pathwayRef rewrites any pathway reference to its canonical map form.
// References without a numeric part are returned unchanged.
func pathwayRef(ref string) string {
	digits := rePathwayDigits.FindString(ref)
	if digits == "" {
		return ref
	}
	return "map" + digits
}

// bareRef strips a namespace prefix from a reference, "ns:id" -> "id".
func bareRef(ref string) string {
	if _, id, ok := strings.Cut(ref, ":"); ok {
		return id
	}
	return ref
}

func identityRef(ref string) string { return ref }

// scopeOf returns the cache scope for a kind. Only gene and pathway
// listings are restricted by organism; every other kind has one global
// listing regardless of the organism in effect.
func scopeOf(kind Kind, org string) string {
	switch kind {
	case KindGene, KindPathway:
		return org
	default:
		return ""
	}
}

// entityTable returns the entity cache for (kind, scope), building it on
// first use with a single "list" fetch. Concurrent callers share one
// in-flight build; a failed build caches nothing.
func (c *Client) entityTable(ctx context.Context, kind Kind, org string) (map[string]string, error) {
	rule, ok := kindRules[kind]
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	scope := scopeOf(kind, org)
	if rule.scoped && scope == "" {
		return nil, fmt.Errorf("listing %s requires an organism code", kind)
	}

	key := "list:" + string(kind) + ":" + scope
	c.mu.Lock()
	table, ok := c.entities[key]
	c.mu.Unlock()
	if ok {
		return table, nil
	}

	v, err := c.cached(key, func() (any, error) {
		c.mu.Lock()
		table, ok := c.entities[key]
		c.mu.Unlock()
		if ok {
			return table, nil
		}

		rows, err := c.Fetch(ctx, "list", rule.listArgs(scope)...)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", kind, err)
		}

		table = make(map[string]string, len(rows))
		for _, row := range rows {
			entryKey, ok := rule.key(row)
			if !ok {
				continue
			}
			entryValue, ok := rule.value(row)
			if !ok {
				continue
			}
			table[entryKey] = entryValue
		}

		c.mu.Lock()
		c.entities[key] = table
		c.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

// List returns the identifier-to-name listing for an entity kind. Gene
// listings require an organism code; pathway listings are restricted to an
// organism when one is given; all other kinds ignore org. The returned map
// is a copy and safe to modify.
func (c *Client) List(ctx context.Context, kind Kind, org string) (map[string]string, error) {
	table, err := c.entityTable(ctx, kind, org)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out, nil
}

// Name resolves a single identifier to its canonical name. The reference
// may be raw ("path:hsa04110", "dr:D00001") or bare; it is normalized with
// the kind's reference rule before lookup. The boolean reports whether the
// identifier is present in the listing.
func (c *Client) Name(ctx context.Context, kind Kind, org, id string) (string, bool, error) {
	table, err := c.entityTable(ctx, kind, org)
	if err != nil {
		return "", false, err
	}
	name, ok := table[kindRules[kind].refKey(id)]
	return name, ok, nil
}
