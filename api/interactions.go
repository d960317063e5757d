package api

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// Interaction is one partner entry of an interaction profile.
type Interaction struct {
	Kind             Kind
	ID               string
	Name             string // empty when unknown
	Contraindication bool
	Precaution       bool
}

// InteractionProfile groups every interaction of one source entry of the
// drug-drug interaction listing, in row order.
type InteractionProfile struct {
	ID           string
	Kind         Kind
	Name         string // empty when unknown
	Interactions []Interaction
}

// ddiKinds maps the one-letter namespace tag of interaction entries to an
// entity kind.
var ddiKinds = map[rune]Kind{
	'd': KindDrug,
	'c': KindCompound,
}

// ddiEntry parses one interaction entry ("dr:D00001", "cpd:C00022"): the
// first letter selects the kind, the identifier is the segment after the
// last colon. Entries with an unknown tag report false.
func ddiEntry(ref string) (Kind, string, bool) {
	if ref == "" {
		return "", "", false
	}
	kind, ok := ddiKinds[unicode.ToLower(rune(ref[0]))]
	if !ok {
		return "", "", false
	}
	id := ref
	if i := strings.LastIndex(id, ":"); i >= 0 {
		id = id[i+1:]
	}
	return kind, id, true
}

// DrugInteractions fetches drug-drug interaction records and groups them
// into one profile per source entry. With an empty drugs slice the whole
// drug listing is queried, one identifier at a time through a bounded
// worker pool. With join set, the given identifiers are combined into a
// single batched request returning only the interactions among the set;
// without it each identifier is fetched separately, concurrently.
//
// A per-identifier fetch failure is logged and skipped; an error is
// returned only when every fetch failed.
func (c *Client) DrugInteractions(ctx context.Context, drugs []string, join bool) (map[string]*InteractionProfile, error) {
	drugNames, err := c.entityTable(ctx, KindDrug, "")
	if err != nil {
		return nil, err
	}
	compoundNames, err := c.entityTable(ctx, KindCompound, "")
	if err != nil {
		return nil, err
	}
	names := map[Kind]map[string]string{
		KindDrug:     drugNames,
		KindCompound: compoundNames,
	}

	if len(drugs) == 0 {
		drugs = make([]string, 0, len(drugNames))
		for id := range drugNames {
			drugs = append(drugs, id)
		}
		sort.Strings(drugs)
		join = false
	}

	var rows [][]string
	if join {
		rows, err = c.Fetch(ctx, "ddi", strings.Join(drugs, "+"))
		if err != nil {
			return nil, fmt.Errorf("joined interactions: %w", err)
		}
	} else {
		rows, err = c.fetchInteractionRows(ctx, drugs)
		if err != nil {
			return nil, err
		}
	}

	profiles := make(map[string]*InteractionProfile)
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		sourceKind, sourceID, ok := ddiEntry(row[0])
		if !ok {
			continue
		}
		targetKind, targetID, ok := ddiEntry(row[1])
		if !ok {
			continue
		}

		labels := strings.Split(row[2], ",")
		interaction := Interaction{
			Kind:             targetKind,
			ID:               targetID,
			Name:             names[targetKind][targetID],
			Contraindication: slices.Contains(labels, "CI"),
			Precaution:       slices.Contains(labels, "P"),
		}

		profile, ok := profiles[sourceID]
		if !ok {
			profile = &InteractionProfile{
				ID:   sourceID,
				Kind: sourceKind,
				Name: names[sourceKind][sourceID],
			}
			profiles[sourceID] = profile
		}
		profile.Interactions = append(profile.Interactions, interaction)
	}
	return profiles, nil
}

// fetchInteractionRows fans out one ddi fetch per identifier and merges
// the row groups in argument order. Failures are isolated per identifier:
// the group is skipped and counted, never aborting collected results.
func (c *Client) fetchInteractionRows(ctx context.Context, drugs []string) ([][]string, error) {
	limit := c.Concurrency
	if limit < 1 {
		limit = 1
	}

	groups := make([][][]string, len(drugs))
	var (
		mu      sync.Mutex
		failed  int
		lastErr error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, drug := range drugs {
		i, drug := i, drug
		g.Go(func() error {
			rows, err := c.Fetch(gCtx, "ddi", drug)
			if err != nil {
				c.Logger.Warn("interaction fetch failed", "drug", drug, "error", err)
				mu.Lock()
				failed++
				lastErr = err
				mu.Unlock()
				return nil
			}
			groups[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if failed > 0 && failed == len(drugs) {
		return nil, fmt.Errorf("all %d interaction fetches failed: %w", failed, lastErr)
	}

	var rows [][]string
	for _, group := range groups {
		rows = append(rows, group...)
	}
	return rows, nil
}
