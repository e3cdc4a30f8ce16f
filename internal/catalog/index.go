package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotFound indicates a lookup matched nothing. Absence is an
	// expected outcome in interactive lookups, so callers should treat
	// this as a normal result rather than a fault.
	ErrNotFound = errors.New("not found")

	// ErrMissingSelector indicates neither an id nor a name was supplied.
	ErrMissingSelector = errors.New("missing selector: provide an id or a name")

	// ErrNoSource indicates a hydration or load was attempted without a
	// catalog source configured.
	ErrNoSource = errors.New("no catalog source configured")
)

// Selector picks an entity by id or by case-insensitive name. Exactly one
// field is expected to be set.
type Selector struct {
	ID   int
	Name string
}

func (sel Selector) empty() bool { return sel.ID == 0 && sel.Name == "" }

// Index owns all entity instances for a session. Collections are populated
// once at load and never grow or shrink afterwards; individual entities
// mutate in place through hydration. Graphs hold references into the index,
// so hydration performed while building a graph is visible to later lookups.
type Index struct {
	Patterns []*Pattern
	Shops    []*Shop
	Yarns    []*Yarn

	source Source
	log    *zap.SugaredLogger
	flight singleflight.Group

	patternsByID   map[int]*Pattern
	patternsByName map[string]*Pattern
	shopsByID      map[int]*Shop
	shopsByName    map[string]*Shop
	yarnsByID      map[int]*Yarn
	yarnsByName    map[string]*Yarn
}

// NewIndex creates an empty index backed by source. source may be nil for a
// cache-only session; hydration then fails with ErrNoSource.
func NewIndex(source Source, log *zap.SugaredLogger) *Index {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Index{source: source, log: log}
}

// Load populates all three collections from the catalog source.
func (ix *Index) Load(ctx context.Context) error {
	if ix.source == nil {
		return ErrNoSource
	}

	patterns, err := ix.source.ListPatterns(ctx)
	if err != nil {
		return fmt.Errorf("loading patterns: %w", err)
	}
	shops, err := ix.source.ListShops(ctx)
	if err != nil {
		return fmt.Errorf("loading shops: %w", err)
	}
	yarns, err := ix.source.ListYarns(ctx)
	if err != nil {
		return fmt.Errorf("loading yarns: %w", err)
	}

	ix.Patterns = patterns
	ix.Shops = shops
	ix.Yarns = yarns
	ix.reindex()
	ix.log.Infow("catalog loaded",
		"patterns", len(patterns), "shops", len(shops), "yarns", len(yarns))
	return nil
}

// reindex rebuilds the id and normalized-name maps. For duplicate names the
// first record wins, matching linear-scan lookup semantics.
func (ix *Index) reindex() {
	ix.patternsByID = make(map[int]*Pattern, len(ix.Patterns))
	ix.patternsByName = make(map[string]*Pattern, len(ix.Patterns))
	for _, p := range ix.Patterns {
		ix.patternsByID[p.ID] = p
		if _, ok := ix.patternsByName[p.Name]; !ok {
			ix.patternsByName[p.Name] = p
		}
	}

	ix.shopsByID = make(map[int]*Shop, len(ix.Shops))
	ix.shopsByName = make(map[string]*Shop, len(ix.Shops))
	for _, s := range ix.Shops {
		ix.shopsByID[s.ID] = s
		if _, ok := ix.shopsByName[s.Name]; !ok {
			ix.shopsByName[s.Name] = s
		}
	}

	ix.yarnsByID = make(map[int]*Yarn, len(ix.Yarns))
	ix.yarnsByName = make(map[string]*Yarn, len(ix.Yarns))
	for _, y := range ix.Yarns {
		ix.yarnsByID[y.ID] = y
		if _, ok := ix.yarnsByName[y.Name]; !ok {
			ix.yarnsByName[y.Name] = y
		}
	}
}

// FindPattern looks up a pattern by id or normalized name.
func (ix *Index) FindPattern(sel Selector) (*Pattern, error) {
	if sel.empty() {
		return nil, ErrMissingSelector
	}
	if sel.ID != 0 {
		if p, ok := ix.patternsByID[sel.ID]; ok {
			return p, nil
		}
		return nil, fmt.Errorf("pattern %d: %w", sel.ID, ErrNotFound)
	}
	if p, ok := ix.patternsByName[NormalizeName(sel.Name)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("pattern %q: %w", sel.Name, ErrNotFound)
}

// FindShop looks up a shop by id or normalized name.
func (ix *Index) FindShop(sel Selector) (*Shop, error) {
	if sel.empty() {
		return nil, ErrMissingSelector
	}
	if sel.ID != 0 {
		if s, ok := ix.shopsByID[sel.ID]; ok {
			return s, nil
		}
		return nil, fmt.Errorf("shop %d: %w", sel.ID, ErrNotFound)
	}
	if s, ok := ix.shopsByName[NormalizeName(sel.Name)]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("shop %q: %w", sel.Name, ErrNotFound)
}

// FindYarn looks up a yarn by id or normalized name.
func (ix *Index) FindYarn(sel Selector) (*Yarn, error) {
	if sel.empty() {
		return nil, ErrMissingSelector
	}
	if sel.ID != 0 {
		if y, ok := ix.yarnsByID[sel.ID]; ok {
			return y, nil
		}
		return nil, fmt.Errorf("yarn %d: %w", sel.ID, ErrNotFound)
	}
	if y, ok := ix.yarnsByName[NormalizeName(sel.Name)]; ok {
		return y, nil
	}
	return nil, fmt.Errorf("yarn %q: %w", sel.Name, ErrNotFound)
}

// PatternsByDesigner returns all patterns whose normalized designer matches
// the normalized input, in load order.
func (ix *Index) PatternsByDesigner(designer string) []*Pattern {
	want := NormalizeName(designer)
	var out []*Pattern
	for _, p := range ix.Patterns {
		if p.Designer == want {
			out = append(out, p)
		}
	}
	return out
}

// ShopsInCity returns all shops in the given city, matched
// case-insensitively, in load order.
func (ix *Index) ShopsInCity(city string) []*Shop {
	want := NormalizeName(city)
	var out []*Shop
	for _, s := range ix.Shops {
		if NormalizeName(s.City) == want {
			out = append(out, s)
		}
	}
	return out
}

// HydratePattern fetches and merges the pattern's supplementary fields in
// place. Idempotent: an already-hydrated pattern is left alone, and at most
// one fetch per pattern id is in flight at a time. On failure the pattern
// keeps its last valid state.
func (ix *Index) HydratePattern(ctx context.Context, p *Pattern) error {
	if p.Hydrated {
		return nil
	}
	if ix.source == nil {
		return ErrNoSource
	}

	_, err, _ := ix.flight.Do(fmt.Sprintf("pattern/%d", p.ID), func() (any, error) {
		if p.Hydrated {
			return nil, nil
		}
		det, err := ix.source.PatternDetail(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("hydrating pattern %d (%s): %w", p.ID, p.Name, err)
		}
		p.Price = det.Price
		p.Currency = det.Currency
		p.RecommendedYarnIDs = det.YarnIDs
		p.Categories = det.Categories
		p.Hydrated = true
		ix.log.Debugw("hydrated pattern", "id", p.ID, "yarns", len(det.YarnIDs))
		return nil, nil
	})
	return err
}

// HydrateYarn fetches and merges the yarn's fiber breakdown in place, with
// the same idempotence guarantees as HydratePattern.
func (ix *Index) HydrateYarn(ctx context.Context, y *Yarn) error {
	if y.Hydrated {
		return nil
	}
	if ix.source == nil {
		return ErrNoSource
	}

	_, err, _ := ix.flight.Do(fmt.Sprintf("yarn/%d", y.ID), func() (any, error) {
		if y.Hydrated {
			return nil, nil
		}
		fibers, err := ix.source.YarnFibers(ctx, y.ID)
		if err != nil {
			return nil, fmt.Errorf("hydrating yarn %d (%s): %w", y.ID, y.Name, err)
		}
		y.Fibers = fibers
		y.Hydrated = true
		ix.log.Debugw("hydrated yarn", "id", y.ID, "fibers", len(fibers))
		return nil, nil
	})
	return err
}
