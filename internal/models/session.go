package models

import "time"

// StudySession groups reviews for reporting. The engine only bumps its
// counters as a write-only side channel; it never reads them back.
type StudySession struct {
	ID           string     `json:"id"`
	UserID       int64      `json:"user_id"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	ReviewCount  int        `json:"review_count"`
	SuccessCount int        `json:"success_count"`
}
