// Package graph builds and ranks the relationship networks derived from the
// catalog: the designer pattern-to-yarn network and the shop proximity
// network. Graphs are ephemeral, constructed fresh per query.
package graph

// NodeType distinguishes the entity behind a node.
type NodeType string

const (
	NodePattern NodeType = "pattern"
	NodeYarn    NodeType = "yarn"
	NodeShop    NodeType = "shop"
)

// Node is a typed, labeled graph node.
type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Type  NodeType `json:"type"`
}

// Edge is an undirected edge, optionally weighted (distance in miles for
// the shop network, zero otherwise).
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight,omitempty"`
}

// Graph is an undirected graph with insertion-ordered nodes and deduplicated
// edges.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`

	byID map[string]*Node
	adj  map[string][]string
	seen map[[2]string]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID: make(map[string]*Node),
		adj:  make(map[string][]string),
		seen: make(map[[2]string]bool),
	}
}

// AddNode adds a node, or returns the existing one for the same id.
func (g *Graph) AddNode(id, label string, typ NodeType) *Node {
	if n, ok := g.byID[id]; ok {
		return n
	}
	n := &Node{ID: id, Label: label, Type: typ}
	g.byID[id] = n
	g.Nodes = append(g.Nodes, n)
	return n
}

// AddEdge adds an undirected edge between two existing nodes. Edges to
// unknown nodes, self-loops, and duplicate unordered pairs are ignored.
func (g *Graph) AddEdge(a, b string, weight float64) {
	if a == b {
		return
	}
	if _, ok := g.byID[a]; !ok {
		return
	}
	if _, ok := g.byID[b]; !ok {
		return
	}
	key := pairKey(a, b)
	if g.seen[key] {
		return
	}
	g.seen[key] = true
	g.Edges = append(g.Edges, Edge{Source: a, Target: b, Weight: weight})
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
}

// HasNode reports whether the graph contains the node id.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Node returns the node for id, or nil.
func (g *Graph) Node(id string) *Node { return g.byID[id] }

// Order returns the node count.
func (g *Graph) Order() int { return len(g.Nodes) }

// Size returns the edge count.
func (g *Graph) Size() int { return len(g.Edges) }

// Degree returns how many neighbors the node has.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// Neighbors returns the node's neighbors in edge-insertion order.
func (g *Graph) Neighbors(id string) []string { return g.adj[id] }

// DegreeCentrality returns, per node, the fraction of all other nodes it is
// directly connected to. On a graph with fewer than two nodes every value
// is zero.
func (g *Graph) DegreeCentrality() map[string]float64 {
	out := make(map[string]float64, len(g.Nodes))
	n := len(g.Nodes)
	for _, node := range g.Nodes {
		if n < 2 {
			out[node.ID] = 0
			continue
		}
		out[node.ID] = float64(len(g.adj[node.ID])) / float64(n-1)
	}
	return out
}

func pairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}
