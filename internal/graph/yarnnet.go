package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
)

// TopYarnCount is how many of a designer's most-recommended yarns are ranked.
const TopYarnCount = 5

// YarnCount pairs a yarn label with how many of the designer's pattern
// recommendations mention it.
type YarnCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// YarnNetwork is the bipartite pattern-to-yarn network for one designer.
type YarnNetwork struct {
	Designer string      `json:"designer"`
	Graph    *Graph      `json:"graph"`
	Top      []YarnCount `json:"top_yarns"`
}

// BuildYarnNetwork assembles the bipartite network of a designer's patterns
// and their recommended yarns, ranking yarns by recommendation frequency.
// A designer with no patterns yields an empty graph and an empty ranking,
// not an error. Every matching pattern (and each yarn it references) is
// hydrated as a side effect.
func BuildYarnNetwork(ctx context.Context, ix *catalog.Index, designer string) (*YarnNetwork, error) {
	net := &YarnNetwork{Designer: catalog.NormalizeName(designer), Graph: New()}

	patterns := ix.PatternsByDesigner(designer)
	if len(patterns) == 0 {
		return net, nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, p := range patterns {
		if err := ix.HydratePattern(ctx, p); err != nil {
			return nil, err
		}
		pid := fmt.Sprintf("pattern:%d", p.ID)
		net.Graph.AddNode(pid, p.Name, NodePattern)

		for _, yarnID := range p.RecommendedYarnIDs {
			y, err := ix.FindYarn(catalog.Selector{ID: yarnID})
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					continue // recommended yarn not in the loaded catalog
				}
				return nil, err
			}
			label := y.Label()
			nid := fmt.Sprintf("yarn:%d", y.ID)
			net.Graph.AddNode(nid, label, NodeYarn)
			net.Graph.AddEdge(pid, nid, 0)

			if _, ok := firstSeen[label]; !ok {
				firstSeen[label] = len(firstSeen)
			}
			counts[label]++
		}
	}

	net.Top = topCounts(counts, firstSeen, TopYarnCount)
	return net, nil
}

// topCounts ranks labels by descending count; ties keep first-encountered
// order.
func topCounts(counts map[string]int, firstSeen map[string]int, n int) []YarnCount {
	ranked := make([]YarnCount, 0, len(counts))
	for label, count := range counts {
		ranked = append(ranked, YarnCount{Label: label, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Label] < firstSeen[ranked[j].Label]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
