package models

import (
	"fmt"
	"time"
)

// ItemKind distinguishes the two reviewable item types.
type ItemKind string

const (
	KindDefinition ItemKind = "definition"
	KindExercise   ItemKind = "exercise"
)

// ValidKind reports whether s is a known item kind.
func ValidKind(s string) bool {
	return s == string(KindDefinition) || s == string(KindExercise)
}

// ItemKey identifies an item across the engine. Items are opaque beyond
// this key plus display metadata; their content lives outside the core.
type ItemKey struct {
	ID   int64    `json:"id"`
	Kind ItemKind `json:"kind"`
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s/%d", k.Kind, k.ID)
}

// Item carries the display metadata the due-reviews query returns.
type Item struct {
	ID        int64     `json:"id"`
	Kind      ItemKind  `json:"kind"`
	DomainID  int64     `json:"domain_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func (i Item) Key() ItemKey {
	return ItemKey{ID: i.ID, Kind: i.Kind}
}

// KindFilter selects which item kinds a due-reviews query returns.
type KindFilter string

const (
	FilterDefinition KindFilter = "definition"
	FilterExercise   KindFilter = "exercise"
	FilterMixed      KindFilter = "mixed"
)
