package graph

import (
	"context"
	"testing"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/geo"
)

func pct(n int) *int { return &n }

func coord(f float64) *geo.Coordinate {
	c := geo.Coordinate(f)
	return &c
}

// stubSource serves canned detail payloads; listings are unused because
// tests build the index from a snapshot.
type stubSource struct {
	details map[int]*catalog.PatternDetail
	fibers  map[int][]catalog.FiberShare
}

func (s *stubSource) ListPatterns(ctx context.Context) ([]*catalog.Pattern, error) { return nil, nil }
func (s *stubSource) ListShops(ctx context.Context) ([]*catalog.Shop, error)       { return nil, nil }
func (s *stubSource) ListYarns(ctx context.Context) ([]*catalog.Yarn, error)       { return nil, nil }

func (s *stubSource) PatternDetail(ctx context.Context, id int) (*catalog.PatternDetail, error) {
	if det, ok := s.details[id]; ok {
		return det, nil
	}
	return &catalog.PatternDetail{}, nil
}

func (s *stubSource) YarnFibers(ctx context.Context, id int) ([]catalog.FiberShare, error) {
	return s.fibers[id], nil
}

func buildIndex(src *stubSource, snap *catalog.Snapshot) *catalog.Index {
	return catalog.FromSnapshot(snap, src, nil)
}

func TestGraph_AddNodeIdempotent(t *testing.T) {
	g := New()
	g.AddNode("a", "A", NodePattern)
	g.AddNode("a", "A again", NodePattern)
	if g.Order() != 1 {
		t.Fatalf("expected 1 node, got %d", g.Order())
	}
	if g.Node("a").Label != "A" {
		t.Errorf("second AddNode should not overwrite, got label %q", g.Node("a").Label)
	}
}

func TestGraph_AddEdge(t *testing.T) {
	g := New()
	g.AddNode("a", "A", NodeShop)
	g.AddNode("b", "B", NodeShop)

	g.AddEdge("a", "b", 1.5)
	g.AddEdge("b", "a", 1.5) // same unordered pair
	g.AddEdge("a", "a", 0)   // self loop
	g.AddEdge("a", "ghost", 0)

	if g.Size() != 1 {
		t.Fatalf("expected 1 edge, got %d", g.Size())
	}
	if g.Degree("a") != 1 || g.Degree("b") != 1 {
		t.Errorf("degrees = %d, %d, want 1, 1", g.Degree("a"), g.Degree("b"))
	}
}

func TestGraph_DegreeCentrality(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(id, id, NodeShop)
	}
	g.AddEdge("a", "b", 0)
	g.AddEdge("a", "c", 0)

	cent := g.DegreeCentrality()
	if cent["a"] != 1.0 {
		t.Errorf("centrality(a) = %f, want 1.0", cent["a"])
	}
	if cent["b"] != 0.5 || cent["c"] != 0.5 {
		t.Errorf("centrality(b,c) = %f, %f, want 0.5, 0.5", cent["b"], cent["c"])
	}
}

func TestGraph_DegreeCentrality_SingleNode(t *testing.T) {
	g := New()
	g.AddNode("a", "A", NodeShop)
	if c := g.DegreeCentrality()["a"]; c != 0 {
		t.Errorf("single-node centrality = %f, want 0", c)
	}
}
