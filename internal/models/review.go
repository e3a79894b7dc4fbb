package models

import "time"

// ReviewSubmission is one explicit review coming in from the outside.
// Success is supplied by the (external) answer verifier; quality is the
// 0..5 self-assessment used by the interval scheduler.
type ReviewSubmission struct {
	UserID           int64    `json:"user_id"`
	ItemID           int64    `json:"item_id"`
	ItemKind         ItemKind `json:"item_kind"`
	Success          bool     `json:"success"`
	Quality          int      `json:"quality"`
	TimeTakenSeconds float64  `json:"time_taken_seconds"`
	SessionID        string   `json:"session_id,omitempty"`
}

func (r ReviewSubmission) Key() ItemKey {
	return ItemKey{ID: r.ItemID, Kind: r.ItemKind}
}

// ReviewHistory is the immutable record of one explicit review.
// Append-only, written once per explicit review, never read back.
type ReviewHistory struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	ItemID         int64     `json:"item_id"`
	ItemKind       ItemKind  `json:"item_kind"`
	Quality        int       `json:"quality"`
	Success        bool      `json:"success"`
	TimeSeconds    float64   `json:"time_seconds"`
	EaseBefore     float64   `json:"ease_before"`
	EaseAfter      float64   `json:"ease_after"`
	IntervalBefore float64   `json:"interval_before"`
	IntervalAfter  float64   `json:"interval_after"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}

// DueItem is one entry of the due-reviews response: the progress state
// plus the basic display metadata of the item.
type DueItem struct {
	ItemID            int64      `json:"item_id"`
	ItemKind          ItemKind   `json:"item_kind"`
	DomainID          int64      `json:"domain_id"`
	Title             string     `json:"title"`
	NextReview        *time.Time `json:"next_review,omitempty"`
	AccumulatedCredit float64    `json:"accumulated_credit"`
	EaseFactor        float64    `json:"ease_factor"`
	Repetitions       int        `json:"repetitions"`
}

func (d DueItem) Key() ItemKey {
	return ItemKey{ID: d.ItemID, Kind: d.ItemKind}
}
