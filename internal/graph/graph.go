package graph

import "github.com/avelar/recallgraph/internal/models"

// Edge is one weighted hop to a neighboring item.
type Edge struct {
	To     models.ItemKey
	Weight float64
}

// Node holds both directions of the prerequisite relation for one item:
// Prereqs are the items this one depends on, Dependents the mirror view.
type Node struct {
	Key        models.ItemKey
	Prereqs    []Edge
	Dependents []Edge
}

// Graph is the adjacency structure for one knowledge domain, keyed by
// (id, kind). It holds no mutable traversal state, so one built graph is
// safe to share across concurrent calls.
type Graph struct {
	nodes map[models.ItemKey]*Node
}

// Build converts a flat edge list into the adjacency structure. Pure and
// stateless; callers rebuild per invocation. Self-edges are skipped.
func Build(edges []models.PrerequisiteEdge) *Graph {
	g := &Graph{nodes: make(map[models.ItemKey]*Node, len(edges))}
	for _, e := range edges {
		item, prereq := e.ItemKey(), e.PrereqKey()
		if item == prereq {
			continue
		}
		g.node(item).Prereqs = append(g.node(item).Prereqs, Edge{To: prereq, Weight: e.Weight})
		g.node(prereq).Dependents = append(g.node(prereq).Dependents, Edge{To: item, Weight: e.Weight})
	}
	return g
}

func (g *Graph) node(key models.ItemKey) *Node {
	n, ok := g.nodes[key]
	if !ok {
		n = &Node{Key: key}
		g.nodes[key] = n
	}
	return n
}

// Node returns the node for key, or nil for an isolated item.
func (g *Graph) Node(key models.ItemKey) *Node {
	return g.nodes[key]
}

// Len returns the number of items with at least one edge.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// LongestPrereqChain measures the longest prerequisite chain reachable
// from key, in hops. The search follows prerequisite edges only and keeps
// a per-path visited set: it measures longest path instead of stopping at
// the first revisit, and still terminates if the data accidentally cycles.
func (g *Graph) LongestPrereqChain(key models.ItemKey) int {
	return g.longestChain(key, map[models.ItemKey]bool{key: true})
}

func (g *Graph) longestChain(key models.ItemKey, onPath map[models.ItemKey]bool) int {
	n := g.nodes[key]
	if n == nil {
		return 0
	}
	best := 0
	for _, e := range n.Prereqs {
		if onPath[e.To] {
			continue
		}
		onPath[e.To] = true
		if d := 1 + g.longestChain(e.To, onPath); d > best {
			best = d
		}
		delete(onPath, e.To)
	}
	return best
}
