package graph

import (
	"context"
	"testing"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
)

func designerFixture() (*stubSource, *catalog.Index) {
	src := &stubSource{
		details: map[int]*catalog.PatternDetail{
			1: {YarnIDs: []int{100, 101}},
			2: {YarnIDs: []int{100}},
		},
		fibers: map[int][]catalog.FiberShare{},
	}
	ix := buildIndex(src, &catalog.Snapshot{
		Patterns: []*catalog.Pattern{
			catalog.NewPattern(1, "Cozy Sweater", true, "", "Jane Doe"),
			catalog.NewPattern(2, "Winter Hat", false, "", "Jane Doe"),
			catalog.NewPattern(3, "Lace Shawl", false, "", "Ann Other"),
		},
		Yarns: []*catalog.Yarn{
			catalog.NewYarn(100, "Soft Merino", "Good Wool Co", "worsted"),
			catalog.NewYarn(101, "Tough Sock", "Good Wool Co", "fingering"),
		},
	})
	return src, ix
}

func TestBuildYarnNetwork(t *testing.T) {
	_, ix := designerFixture()

	net, err := BuildYarnNetwork(context.Background(), ix, "jane doe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := net.Graph.Order(); got != 4 {
		t.Errorf("nodes = %d, want 4 (2 patterns + 2 yarns)", got)
	}
	if got := net.Graph.Size(); got != 3 {
		t.Errorf("edges = %d, want 3", got)
	}
	for _, id := range []string{"pattern:1", "pattern:2", "yarn:100", "yarn:101"} {
		if !net.Graph.HasNode(id) {
			t.Errorf("missing node %s", id)
		}
	}

	want := []YarnCount{
		{Label: "Soft Merino by Good Wool Co", Count: 2},
		{Label: "Tough Sock by Good Wool Co", Count: 1},
	}
	if len(net.Top) != len(want) {
		t.Fatalf("top list length = %d, want %d", len(net.Top), len(want))
	}
	for i := range want {
		if net.Top[i] != want[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, net.Top[i], want[i])
		}
	}
}

func TestBuildYarnNetwork_HydratesEntities(t *testing.T) {
	_, ix := designerFixture()

	if _, err := BuildYarnNetwork(context.Background(), ix, "Jane Doe"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := ix.FindPattern(catalog.Selector{ID: 1})
	if err != nil {
		t.Fatalf("find pattern: %v", err)
	}
	if !p.Hydrated {
		t.Error("building the network should hydrate the designer's patterns")
	}
	if len(p.RecommendedYarnIDs) != 2 {
		t.Errorf("recommended yarn ids = %v, want 2 entries", p.RecommendedYarnIDs)
	}
}

func TestBuildYarnNetwork_UnknownDesigner(t *testing.T) {
	_, ix := designerFixture()

	net, err := BuildYarnNetwork(context.Background(), ix, "Nobody Here")
	if err != nil {
		t.Fatalf("unknown designer should not be an error, got %v", err)
	}
	if net.Graph.Order() != 0 {
		t.Errorf("expected empty graph, got %d nodes", net.Graph.Order())
	}
	if len(net.Top) != 0 {
		t.Errorf("expected empty top list, got %v", net.Top)
	}
}

func TestBuildYarnNetwork_UnknownYarnSkipped(t *testing.T) {
	src, ix := designerFixture()
	src.details[2] = &catalog.PatternDetail{YarnIDs: []int{100, 999}}

	net, err := BuildYarnNetwork(context.Background(), ix, "Jane Doe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if net.Graph.HasNode("yarn:999") {
		t.Error("yarn missing from the catalog should not appear in the graph")
	}
}

func TestTopCounts_TieBreaksByFirstSeen(t *testing.T) {
	counts := map[string]int{"A": 2, "B": 2, "C": 1}
	firstSeen := map[string]int{"B": 0, "A": 1, "C": 2}

	top := topCounts(counts, firstSeen, 5)
	want := []YarnCount{{"B", 2}, {"A", 2}, {"C", 1}}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}
}
