package models

import "time"

// Status is the coarse mastery state of an item for one user.
type Status string

const (
	StatusFresh    Status = "fresh"
	StatusTackling Status = "tackling"
	StatusGrasped  Status = "grasped"
	StatusLearned  Status = "learned"
)

// ValidStatus reports whether s is a known status value.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusFresh, StatusTackling, StatusGrasped, StatusLearned:
		return true
	}
	return false
}

// Defaults for a lazily created progress row.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// Progress is the per-(user, item) scheduling state. Only the review
// orchestrator and the status cascade mutate it; the core never deletes it.
type Progress struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	ItemID            int64      `json:"item_id"`
	ItemKind          ItemKind   `json:"item_kind"`
	Status            Status     `json:"status"`
	EaseFactor        float64    `json:"ease_factor"`
	IntervalDays      float64    `json:"interval_days"`
	Repetitions       int        `json:"repetitions"`
	LastReview        *time.Time `json:"last_review,omitempty"`
	NextReview        *time.Time `json:"next_review,omitempty"`
	AccumulatedCredit float64    `json:"accumulated_credit"`
	CreditPostponed   bool       `json:"credit_postponed"`
	TotalReviews      int        `json:"total_reviews"`
	SuccessfulReviews int        `json:"successful_reviews"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (p Progress) Key() ItemKey {
	return ItemKey{ID: p.ItemID, Kind: p.ItemKind}
}

// NewProgress returns a default row for a (user, item) pair that has not
// been engaged with before.
func NewProgress(userID int64, key ItemKey) Progress {
	return Progress{
		UserID:     userID,
		ItemID:     key.ID,
		ItemKind:   key.Kind,
		Status:     StatusFresh,
		EaseFactor: DefaultEaseFactor,
	}
}

// ClampCredit bounds an accumulated-credit value to [-1, 1].
func ClampCredit(c float64) float64 {
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}
