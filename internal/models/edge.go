package models

// PrerequisiteEdge states that an item depends on a prerequisite item.
// Weight is a probability-like multiplier in (0, 1], never zero.
// IsManual marks edges placed by hand rather than derived ones.
type PrerequisiteEdge struct {
	ID         int64    `json:"id"`
	DomainID   int64    `json:"domain_id"`
	ItemID     int64    `json:"item_id"`
	ItemKind   ItemKind `json:"item_kind"`
	PrereqID   int64    `json:"prereq_id"`
	PrereqKind ItemKind `json:"prereq_kind"`
	Weight     float64  `json:"weight"`
	IsManual   bool     `json:"is_manual"`
}

func (e PrerequisiteEdge) ItemKey() ItemKey {
	return ItemKey{ID: e.ItemID, Kind: e.ItemKind}
}

func (e PrerequisiteEdge) PrereqKey() ItemKey {
	return ItemKey{ID: e.PrereqID, Kind: e.PrereqKind}
}
