package catalog

import "context"

// PatternDetail carries the supplementary pattern fields returned by the
// catalog source's detail endpoint.
type PatternDetail struct {
	Price      *float64
	Currency   string
	YarnIDs    []int
	Categories []string
}

// Source is the external catalog collaborator: paginated listing endpoints
// for each entity type plus per-entity detail endpoints used for hydration.
type Source interface {
	ListPatterns(ctx context.Context) ([]*Pattern, error)
	ListShops(ctx context.Context) ([]*Shop, error)
	ListYarns(ctx context.Context) ([]*Yarn, error)
	PatternDetail(ctx context.Context, id int) (*PatternDetail, error)
	YarnFibers(ctx context.Context, id int) ([]FiberShare, error)
}
