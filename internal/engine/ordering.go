package engine

import (
	"sort"

	"github.com/avelar/recallgraph/internal/graph"
	"github.com/avelar/recallgraph/internal/models"
)

// impactEpsilon is the margin under which two impact scores count as a
// tie and the deeper prerequisite chain wins.
const impactEpsilon = 0.1

// OrderReviews sorts a batch of due items so that reviewing the front of
// the list yields the most downstream scheduling benefit. Impact is the
// positive implicit credit a hypothetical successful review would send to
// other items in the same due set; ties within impactEpsilon fall back to
// the longest prerequisite chain, deepest first. The sort is stable over
// the caller's order, so a static due set always comes back the same way.
func OrderReviews(due []models.DueItem, g *graph.Graph) []models.DueItem {
	inSet := make(map[models.ItemKey]bool, len(due))
	for _, d := range due {
		inSet[d.Key()] = true
	}

	type scored struct {
		item   models.DueItem
		impact float64
		depth  int
	}
	scores := make([]scored, len(due))
	for i, d := range due {
		scores[i] = scored{
			item:   d,
			impact: impactOn(d.Key(), inSet, g),
			depth:  g.LongestPrereqChain(d.Key()),
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		di := scores[i].impact - scores[j].impact
		if di >= impactEpsilon {
			return true
		}
		if di <= -impactEpsilon {
			return false
		}
		return scores[i].depth > scores[j].depth
	})

	out := make([]models.DueItem, len(scores))
	for i, s := range scores {
		out[i] = s.item
	}
	return out
}

// impactOn simulates a successful review of item and sums the positive
// implicit credit that would land on other currently-due items. Nothing
// is persisted.
func impactOn(item models.ItemKey, due map[models.ItemKey]bool, g *graph.Graph) float64 {
	total := 0.0
	for _, c := range PropagateCredit(item, true, g) {
		if c.Kind == Implicit && c.Amount > 0 && due[c.Item] {
			total += c.Amount
		}
	}
	return total
}
