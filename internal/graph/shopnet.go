package graph

import (
	"fmt"
	"sort"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
	"github.com/ilanamermelstein/fiber-arts-finder/internal/geo"
)

const (
	// DefaultRadiusMiles bounds which shops count as near the target city.
	DefaultRadiusMiles = 50.0

	// TopShopCount is how many shops the proximity ranking reports.
	TopShopCount = 3
)

// ShopRank scores one shop in the proximity network. DegreeCentrality is
// uniform across a complete graph, so the ordering uses MeanDistance: the
// average distance to every other included shop, lowest first.
type ShopRank struct {
	Label            string  `json:"label"`
	DegreeCentrality float64 `json:"degree_centrality"`
	MeanDistance     float64 `json:"mean_distance_miles"`
}

// ShopNetwork is the proximity network of shops around a resolved city
// point. Graph is nil when no shop lies within the radius.
type ShopNetwork struct {
	Center geo.Point  `json:"center"`
	Radius float64    `json:"radius_miles"`
	Graph  *Graph     `json:"graph,omitempty"`
	Top    []ShopRank `json:"top_shops,omitempty"`
}

// BuildShopNetwork filters shops to those with known coordinates within
// radius miles of center, assembles the complete weighted graph over them
// (edge weight is the pairwise distance, not distance to center), and ranks
// the most central shops.
func BuildShopNetwork(ix *catalog.Index, center geo.Point, radius float64, topN int) *ShopNetwork {
	if radius <= 0 {
		radius = DefaultRadiusMiles
	}
	if topN <= 0 {
		topN = TopShopCount
	}
	net := &ShopNetwork{Center: center, Radius: radius}

	// Shops lacking either coordinate are always excluded.
	var included []*catalog.Shop
	var points []geo.Point
	for _, s := range ix.Shops {
		p, err := s.Location()
		if err != nil {
			continue
		}
		if geo.Distance(p, center) <= radius {
			included = append(included, s)
			points = append(points, p)
		}
	}
	if len(included) == 0 {
		return net
	}

	g := New()
	ids := make([]string, len(included))
	for i, s := range included {
		ids[i] = fmt.Sprintf("shop:%d", s.ID)
		g.AddNode(ids[i], s.Label(), NodeShop)
	}
	for i := range included {
		for j := i + 1; j < len(included); j++ {
			g.AddEdge(ids[i], ids[j], geo.Distance(points[i], points[j]))
		}
	}
	net.Graph = g

	centrality := g.DegreeCentrality()
	ranks := make([]ShopRank, len(included))
	for i, s := range included {
		var total float64
		for j := range included {
			if j != i {
				total += geo.Distance(points[i], points[j])
			}
		}
		mean := 0.0
		if len(included) > 1 {
			mean = total / float64(len(included)-1)
		}
		ranks[i] = ShopRank{
			Label:            s.Label(),
			DegreeCentrality: centrality[ids[i]],
			MeanDistance:     mean,
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].MeanDistance < ranks[j].MeanDistance
	})
	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	net.Top = ranks
	return net
}
