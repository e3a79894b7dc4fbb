package engine

import (
	"github.com/avelar/recallgraph/internal/graph"
	"github.com/avelar/recallgraph/internal/models"
)

// ContributionKind distinguishes the directly reviewed item from items
// reached through the prerequisite graph.
type ContributionKind string

const (
	Explicit ContributionKind = "explicit"
	Implicit ContributionKind = "implicit"
)

// Contribution is one credit flow toward an item produced by a review.
type Contribution struct {
	Item   models.ItemKey   `json:"item"`
	Amount float64          `json:"amount"`
	Kind   ContributionKind `json:"kind"`
}

const (
	// MaxDepth caps traversal distance from the reviewed item.
	MaxDepth = 6
	// MinCredit is the emission threshold; weaker contributions are
	// dropped but the traversal still passes through them.
	MinCredit = 0.01
)

// PropagateCredit turns one explicit review outcome into an ordered list
// of credit contributions. A success spreads positive credit along the
// prerequisite direction (passing the item is evidence its prerequisites
// hold); a failure spreads negative credit along the dependent direction.
// Each item is visited at most once per call and traversal stops after
// MaxDepth hops, so the walk terminates on any topology.
func PropagateCredit(item models.ItemKey, success bool, g *graph.Graph) []Contribution {
	out := []Contribution{{Item: item, Amount: 1.0, Kind: Explicit}}

	node := g.Node(item)
	if node == nil {
		return out
	}

	visited := map[models.ItemKey]bool{item: true}
	sign := 1.0
	if !success {
		sign = -1.0
	}
	return spread(g, node, success, sign, 1.0, 1, visited, out)
}

// spread walks one direction of the graph. carried is the magnitude the
// parent item received (1.0 at the reviewed item); each hop scales it by
// the edge weight and divides by (1 + distance), so credit decays with
// both weaker links and longer paths.
func spread(g *graph.Graph, node *graph.Node, success bool, sign, carried float64, depth int, visited map[models.ItemKey]bool, out []Contribution) []Contribution {
	if depth > MaxDepth {
		return out
	}

	edges := node.Prereqs
	if !success {
		edges = node.Dependents
	}
	for _, e := range edges {
		if visited[e.To] {
			continue
		}
		visited[e.To] = true

		amount := carried * e.Weight / float64(1+depth)
		if amount >= MinCredit {
			out = append(out, Contribution{Item: e.To, Amount: sign * amount, Kind: Implicit})
		}

		// Below-threshold amounts are not emitted, but the walk still
		// passes through the item.
		if next := g.Node(e.To); next != nil {
			out = spread(g, next, success, sign, amount, depth+1, visited, out)
		}
	}
	return out
}
