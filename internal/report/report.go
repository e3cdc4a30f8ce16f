// Package report renders human-readable views of catalog lookups and
// network analyses. Everything returns a string so the CLI and the
// interactive menu share the same output.
package report

import (
	"fmt"
	"strings"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/graph"
)

const ruleWidth = 40

func header(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n  %s\n", strings.ToUpper(title))
	fmt.Fprintf(b, "  %s\n", strings.Repeat("─", ruleWidth))
}

// Pattern renders one pattern's detail view. yarnLabels are the display
// labels of its recommended yarns, in recommendation order; pass nil when
// the pattern is not hydrated.
func Pattern(p *catalog.Pattern, yarnLabels []string) string {
	var b strings.Builder
	header(&b, "Pattern")
	fmt.Fprintf(&b, "  %s by %s\n", p.Name, p.Designer)
	fmt.Fprintf(&b, "  Link: %s\n", p.Link)
	if p.Free {
		fmt.Fprintf(&b, "  Price: free\n")
	} else if p.Price != nil {
		fmt.Fprintf(&b, "  Price: %.2f %s\n", *p.Price, p.Currency)
	} else {
		fmt.Fprintf(&b, "  Price: unknown\n")
	}
	if len(p.Categories) > 0 {
		fmt.Fprintf(&b, "  Categories: %s\n", strings.Join(p.Categories, ", "))
	}
	if len(yarnLabels) > 0 {
		fmt.Fprintf(&b, "\n  Recommended yarns:\n")
		for _, label := range yarnLabels {
			fmt.Fprintf(&b, "    - %s\n", label)
		}
	} else if p.Hydrated {
		fmt.Fprintf(&b, "\n  No recommended yarns listed.\n")
	}
	return b.String()
}

// Yarn renders one yarn's detail view, including its fiber makeup and the
// dominant fiber when one can be resolved.
func Yarn(y *catalog.Yarn) string {
	var b strings.Builder
	header(&b, "Yarn")
	fmt.Fprintf(&b, "  %s\n", y.Label())
	if y.Weight != "" {
		fmt.Fprintf(&b, "  Weight: %s\n", y.Weight)
	}
	if len(y.Fibers) == 0 {
		fmt.Fprintf(&b, "  No fiber content listed.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\n  Fiber content:\n")
	for _, share := range y.Fibers {
		if share.Percent != nil {
			fmt.Fprintf(&b, "    %3d%%  %s\n", *share.Percent, share.Fiber)
		} else {
			fmt.Fprintf(&b, "      ?  %s\n", share.Fiber)
		}
	}
	if fiber, err := catalog.DominantFiber(y.Fibers); err == nil {
		fmt.Fprintf(&b, "\n  Dominant fiber: %s\n", fiber)
	}
	return b.String()
}

// Shops renders the shop listing for one city.
func Shops(city string, shops []*catalog.Shop) string {
	var b strings.Builder
	header(&b, "Shops")
	if len(shops) == 0 {
		fmt.Fprintf(&b, "  No shops found in %s.\n", city)
		return b.String()
	}
	fmt.Fprintf(&b, "  %d in %s:\n", len(shops), city)
	for _, s := range shops {
		if _, err := s.Location(); err != nil {
			fmt.Fprintf(&b, "    - %s (location unknown)\n", s.Name)
			continue
		}
		fmt.Fprintf(&b, "    - %s\n", s.Name)
	}
	return b.String()
}

// YarnNetwork renders a designer's pattern-to-yarn network summary and its
// most-recommended yarns.
func YarnNetwork(n *graph.YarnNetwork) string {
	var b strings.Builder
	header(&b, "Yarn network")
	fmt.Fprintf(&b, "  Designer: %s\n", n.Designer)
	if n.Graph == nil || n.Graph.Order() == 0 {
		fmt.Fprintf(&b, "  No patterns found for this designer.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  Nodes: %d  Edges: %d\n", n.Graph.Order(), n.Graph.Size())
	if len(n.Top) > 0 {
		fmt.Fprintf(&b, "\n  Most recommended yarns:\n")
		for i, yc := range n.Top {
			noun := "patterns"
			if yc.Count == 1 {
				noun = "pattern"
			}
			fmt.Fprintf(&b, "    %d. %s  (%d %s)\n", i+1, yc.Label, yc.Count, noun)
		}
	}
	return b.String()
}

// ShopNetwork renders the proximity network around a city and its most
// central shops.
func ShopNetwork(city string, n *graph.ShopNetwork) string {
	var b strings.Builder
	header(&b, "Shop network")
	fmt.Fprintf(&b, "  Center: %s (%.4f, %.4f)  Radius: %.0f mi\n",
		city, n.Center.Lat, n.Center.Long, n.Radius)
	if n.Graph == nil {
		fmt.Fprintf(&b, "  No shops with known coordinates within range.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  Nodes: %d  Edges: %d\n", n.Graph.Order(), n.Graph.Size())
	if len(n.Top) > 0 {
		fmt.Fprintf(&b, "\n  Most central shops:\n")
		for i, r := range n.Top {
			fmt.Fprintf(&b, "    %d. %s  centrality=%.2f  mean distance=%.1f mi\n",
				i+1, r.Label, r.DegreeCentrality, r.MeanDistance)
		}
	}
	return b.String()
}

// Alternatives renders the similar-yarn report for one pattern.
func Alternatives(a *graph.Alternatives) string {
	var b strings.Builder
	header(&b, "Yarn alternatives")
	fmt.Fprintf(&b, "  Pattern: %s by %s\n", a.Pattern, a.Designer)
	if len(a.Recommended) == 0 {
		fmt.Fprintf(&b, "  The pattern lists no recommended yarns to match against.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\n  Recommended:\n")
	for _, label := range a.Recommended {
		fmt.Fprintf(&b, "    - %s\n", label)
	}
	if len(a.Alternates) == 0 {
		fmt.Fprintf(&b, "\n  No compatible alternatives in this designer's other patterns.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\n  Compatible alternatives:\n")
	for _, label := range a.Alternates {
		fmt.Fprintf(&b, "    - %s\n", label)
	}
	return b.String()
}
