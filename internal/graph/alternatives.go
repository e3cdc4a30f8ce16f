package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
)

// Alternatives is the similar-yarn report for one pattern: the yarns its
// designer recommends for it, plus compatible yarns the same designer
// recommends in other patterns.
type Alternatives struct {
	Pattern     string   `json:"pattern"`
	Designer    string   `json:"designer"`
	Recommended []string `json:"recommended"`
	Alternates  []string `json:"alternates,omitempty"`
}

// FindAlternatives cross-references the target pattern's recommended yarns
// against the designer's other patterns, surfacing yarns whose dominant
// fiber and declared weight both match one of the target's recommendations.
// Yarns already recommended by the target are never reported. A target with
// no recommended yarns yields an empty Recommended list and no cross-check.
func FindAlternatives(ctx context.Context, ix *catalog.Index, target *catalog.Pattern) (*Alternatives, error) {
	out := &Alternatives{Pattern: target.Name, Designer: target.Designer}

	if err := ix.HydratePattern(ctx, target); err != nil {
		return nil, err
	}

	ownIDs := make(map[int]bool)
	fibers := make(map[string]bool)
	weights := make(map[string]bool)
	for _, yarnID := range target.RecommendedYarnIDs {
		y, err := ix.FindYarn(catalog.Selector{ID: yarnID})
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if err := ix.HydrateYarn(ctx, y); err != nil {
			return nil, err
		}
		fiber, err := catalog.DominantFiber(y.Fibers)
		if err != nil {
			return nil, fmt.Errorf("yarn %d (%s): %w", y.ID, y.Name, err)
		}
		ownIDs[y.ID] = true
		fibers[fiber] = true
		weights[y.Weight] = true
		out.Recommended = append(out.Recommended, y.Label())
	}
	if len(out.Recommended) == 0 {
		return out, nil
	}

	alternates := make(map[string]bool)
	for _, p := range ix.PatternsByDesigner(target.Designer) {
		if p.ID == target.ID {
			continue
		}
		if err := ix.HydratePattern(ctx, p); err != nil {
			return nil, err
		}
		for _, yarnID := range p.RecommendedYarnIDs {
			y, err := ix.FindYarn(catalog.Selector{ID: yarnID})
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					continue
				}
				return nil, err
			}
			if ownIDs[y.ID] {
				continue
			}
			if err := ix.HydrateYarn(ctx, y); err != nil {
				return nil, err
			}
			fiber, err := catalog.DominantFiber(y.Fibers)
			if err != nil {
				// A candidate with no fiber data can't match; skip it.
				continue
			}
			if fibers[fiber] && weights[y.Weight] {
				alternates[y.Label()] = true
			}
		}
	}

	for label := range alternates {
		out.Alternates = append(out.Alternates, label)
	}
	sort.Strings(out.Alternates)
	return out, nil
}
