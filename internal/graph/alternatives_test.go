package graph

import (
	"context"
	"testing"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
)

func alternativesFixture() (*stubSource, *catalog.Index) {
	src := &stubSource{
		details: map[int]*catalog.PatternDetail{
			1: {YarnIDs: []int{100}},      // target: recommends Soft Merino
			2: {YarnIDs: []int{101, 102}}, // same designer: wool match + cotton miss
			3: {YarnIDs: []int{100}},      // same designer: target's own yarn again
			4: {YarnIDs: []int{103}},      // other designer, never scanned
		},
		fibers: map[int][]catalog.FiberShare{
			100: {{Percent: pct(80), Fiber: "Wool"}, {Percent: pct(20), Fiber: "Nylon"}},
			101: {{Percent: pct(100), Fiber: "Wool"}},
			102: {{Percent: pct(100), Fiber: "Cotton"}},
			103: {{Percent: pct(100), Fiber: "Wool"}},
		},
	}
	ix := buildIndex(src, &catalog.Snapshot{
		Patterns: []*catalog.Pattern{
			catalog.NewPattern(1, "Cozy Sweater", true, "", "Jane Doe"),
			catalog.NewPattern(2, "Winter Hat", false, "", "Jane Doe"),
			catalog.NewPattern(3, "Cabled Mittens", false, "", "Jane Doe"),
			catalog.NewPattern(4, "Lace Shawl", false, "", "Ann Other"),
		},
		Yarns: []*catalog.Yarn{
			catalog.NewYarn(100, "Soft Merino", "Good Wool Co", "worsted"),
			catalog.NewYarn(101, "Warm Worsted", "Good Wool Co", "worsted"),
			catalog.NewYarn(102, "Cool Cotton", "Plant Fiber Inc", "worsted"),
			catalog.NewYarn(103, "Stray Skein", "Other Brand", "worsted"),
		},
	})
	return src, ix
}

func TestFindAlternatives(t *testing.T) {
	_, ix := alternativesFixture()
	target, err := ix.FindPattern(catalog.Selector{ID: 1})
	if err != nil {
		t.Fatalf("find pattern: %v", err)
	}

	alt, err := FindAlternatives(context.Background(), ix, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(alt.Recommended) != 1 || alt.Recommended[0] != "Soft Merino by Good Wool Co" {
		t.Errorf("recommended = %v, want the target's own yarn", alt.Recommended)
	}
	if len(alt.Alternates) != 1 || alt.Alternates[0] != "Warm Worsted by Good Wool Co" {
		t.Errorf("alternates = %v, want only the wool/worsted match", alt.Alternates)
	}
}

func TestFindAlternatives_OwnYarnNeverReported(t *testing.T) {
	_, ix := alternativesFixture()
	target, err := ix.FindPattern(catalog.Selector{ID: 1})
	if err != nil {
		t.Fatalf("find pattern: %v", err)
	}

	alt, err := FindAlternatives(context.Background(), ix, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, label := range alt.Alternates {
		if label == "Soft Merino by Good Wool Co" {
			t.Error("a yarn in the target's own recommended set must not be an alternative")
		}
	}
}

func TestFindAlternatives_WeightMustMatch(t *testing.T) {
	src, ix := alternativesFixture()
	src.fibers[101] = []catalog.FiberShare{{Percent: pct(100), Fiber: "Wool"}}
	// Same fiber, different declared weight: not compatible.
	y, err := ix.FindYarn(catalog.Selector{ID: 101})
	if err != nil {
		t.Fatalf("find yarn: %v", err)
	}
	y.Weight = "lace"

	target, err := ix.FindPattern(catalog.Selector{ID: 1})
	if err != nil {
		t.Fatalf("find pattern: %v", err)
	}
	alt, err := FindAlternatives(context.Background(), ix, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alt.Alternates) != 0 {
		t.Errorf("alternates = %v, want none when weight differs", alt.Alternates)
	}
}

func TestFindAlternatives_NoRecommendedYarns(t *testing.T) {
	src, ix := alternativesFixture()
	src.details[1] = &catalog.PatternDetail{}

	target, err := ix.FindPattern(catalog.Selector{ID: 1})
	if err != nil {
		t.Fatalf("find pattern: %v", err)
	}
	alt, err := FindAlternatives(context.Background(), ix, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alt.Recommended) != 0 || len(alt.Alternates) != 0 {
		t.Errorf("expected empty report, got %+v", alt)
	}
}

func TestFindAlternatives_CandidateWithoutFibersSkipped(t *testing.T) {
	src, ix := alternativesFixture()
	delete(src.fibers, 101)

	target, err := ix.FindPattern(catalog.Selector{ID: 1})
	if err != nil {
		t.Fatalf("find pattern: %v", err)
	}
	alt, err := FindAlternatives(context.Background(), ix, target)
	if err != nil {
		t.Fatalf("a candidate without fiber data should be skipped, got %v", err)
	}
	if len(alt.Alternates) != 0 {
		t.Errorf("alternates = %v, want none", alt.Alternates)
	}
}
