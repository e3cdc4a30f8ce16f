package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/geo"
)

// fakeSource serves canned listings and details, counting detail calls so
// hydration memoization can be asserted.
type fakeSource struct {
	patterns []*Pattern
	shops    []*Shop
	yarns    []*Yarn

	details      map[int]*PatternDetail
	fibers       map[int][]FiberShare
	detailCalls  map[int]int
	fiberCalls   map[int]int
	failPatterns bool
	failYarns    bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		details:     make(map[int]*PatternDetail),
		fibers:      make(map[int][]FiberShare),
		detailCalls: make(map[int]int),
		fiberCalls:  make(map[int]int),
	}
}

func (f *fakeSource) ListPatterns(ctx context.Context) ([]*Pattern, error) {
	return f.patterns, nil
}
func (f *fakeSource) ListShops(ctx context.Context) ([]*Shop, error) { return f.shops, nil }
func (f *fakeSource) ListYarns(ctx context.Context) ([]*Yarn, error) { return f.yarns, nil }

func (f *fakeSource) PatternDetail(ctx context.Context, id int) (*PatternDetail, error) {
	f.detailCalls[id]++
	if f.failPatterns {
		return nil, errors.New("remote failure")
	}
	det, ok := f.details[id]
	if !ok {
		return &PatternDetail{}, nil
	}
	return det, nil
}

func (f *fakeSource) YarnFibers(ctx context.Context, id int) ([]FiberShare, error) {
	f.fiberCalls[id]++
	if f.failYarns {
		return nil, errors.New("remote failure")
	}
	return f.fibers[id], nil
}

func coord(f float64) *geo.Coordinate {
	c := geo.Coordinate(f)
	return &c
}

func testIndex(t *testing.T, src *fakeSource) *Index {
	t.Helper()
	src.patterns = []*Pattern{
		NewPattern(1, "  cozy sweater ", true, "https://example.com/1", "jane doe"),
		NewPattern(2, "Winter Hat", false, "https://example.com/2", "Jane Doe"),
		NewPattern(3, "Lace Shawl", false, "https://example.com/3", "Ann Other"),
	}
	src.shops = []*Shop{
		NewShop(10, "downtown fibers", coord(40.01), coord(-75.01), "Philadelphia"),
		NewShop(11, "Uptown Yarns", coord(41.5), coord(-75.0), "Scranton"),
		NewShop(12, "Mystery Wools", nil, nil, "Philadelphia"),
	}
	src.yarns = []*Yarn{
		NewYarn(100, "soft merino", "good wool co", "worsted"),
		NewYarn(101, "Tough Sock", "Good Wool Co", "fingering"),
	}

	ix := NewIndex(src, nil)
	require.NoError(t, ix.Load(context.Background()))
	return ix
}

func TestIndex_FindByID(t *testing.T) {
	ix := testIndex(t, newFakeSource())

	p, err := ix.FindPattern(Selector{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Cozy Sweater", p.Name)
	assert.Equal(t, "Jane Doe", p.Designer)

	y, err := ix.FindYarn(Selector{ID: 100})
	require.NoError(t, err)
	assert.Equal(t, "Soft Merino", y.Name)
	assert.Equal(t, "Good Wool Co", y.Brand)
}

func TestIndex_FindByName_CaseInsensitive(t *testing.T) {
	ix := testIndex(t, newFakeSource())

	p, err := ix.FindPattern(Selector{Name: "cozy SWEATER"})
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)

	s, err := ix.FindShop(Selector{Name: "DOWNTOWN fibers"})
	require.NoError(t, err)
	assert.Equal(t, 10, s.ID)
}

func TestIndex_NotFoundIsNormal(t *testing.T) {
	ix := testIndex(t, newFakeSource())

	_, err := ix.FindPattern(Selector{ID: 999})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = ix.FindYarn(Selector{Name: "No Such Yarn"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestIndex_MissingSelector(t *testing.T) {
	ix := testIndex(t, newFakeSource())
	for _, err := range []error{
		func() error { _, err := ix.FindPattern(Selector{}); return err }(),
		func() error { _, err := ix.FindShop(Selector{}); return err }(),
		func() error { _, err := ix.FindYarn(Selector{}); return err }(),
	} {
		assert.True(t, errors.Is(err, ErrMissingSelector))
	}
}

func TestIndex_PatternsByDesigner(t *testing.T) {
	ix := testIndex(t, newFakeSource())

	got := ix.PatternsByDesigner("  jane doe ")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)

	assert.Empty(t, ix.PatternsByDesigner("Nobody Here"))
}

func TestIndex_ShopsInCity(t *testing.T) {
	ix := testIndex(t, newFakeSource())

	got := ix.ShopsInCity("philadelphia")
	require.Len(t, got, 2)
	assert.Equal(t, "Downtown Fibers", got[0].Name)
	assert.Equal(t, "Mystery Wools", got[1].Name)
}

func TestIndex_HydratePattern_Memoized(t *testing.T) {
	src := newFakeSource()
	src.details[1] = &PatternDetail{Currency: "USD", YarnIDs: []int{100, 101}}
	ix := testIndex(t, src)

	p, err := ix.FindPattern(Selector{ID: 1})
	require.NoError(t, err)

	require.NoError(t, ix.HydratePattern(context.Background(), p))
	require.NoError(t, ix.HydratePattern(context.Background(), p))

	assert.True(t, p.Hydrated)
	assert.Equal(t, []int{100, 101}, p.RecommendedYarnIDs)
	assert.Equal(t, 1, src.detailCalls[1], "hydration should fetch at most once")
}

func TestIndex_HydrateYarn_FailureLeavesState(t *testing.T) {
	src := newFakeSource()
	src.failYarns = true
	ix := testIndex(t, src)

	y, err := ix.FindYarn(Selector{ID: 100})
	require.NoError(t, err)

	err = ix.HydrateYarn(context.Background(), y)
	require.Error(t, err)
	assert.False(t, y.Hydrated)
	assert.Nil(t, y.Fibers)

	// A later retry can still succeed.
	src.failYarns = false
	src.fibers[100] = []FiberShare{{pct(100), "Wool"}}
	require.NoError(t, ix.HydrateYarn(context.Background(), y))
	assert.True(t, y.Hydrated)
	require.Len(t, y.Fibers, 1)
}

func TestShop_Location(t *testing.T) {
	ix := testIndex(t, newFakeSource())

	s, err := ix.FindShop(Selector{ID: 10})
	require.NoError(t, err)
	p, err := s.Location()
	require.NoError(t, err)
	assert.InDelta(t, 40.01, p.Lat, 1e-9)

	noCoords, err := ix.FindShop(Selector{ID: 12})
	require.NoError(t, err)
	_, err = noCoords.Location()
	assert.True(t, errors.Is(err, geo.ErrInvalidCoordinate))
}
