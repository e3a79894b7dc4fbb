package repository

import (
	"context"
	"time"

	"github.com/avelar/recallgraph/internal/models"
)

// ProgressTx is the slice of the progress store visible inside one
// transaction. Everything a review submission or status cascade touches
// goes through it so the whole batch commits or rolls back together.
type ProgressTx interface {
	// Get returns the progress row for (user, item), or nil when the
	// pair was never engaged with.
	Get(ctx context.Context, userID int64, key models.ItemKey) (*models.Progress, error)
	// Upsert writes the row, creating it on first use, and returns it
	// with the row id filled in.
	Upsert(ctx context.Context, p models.Progress) (models.Progress, error)
	// InsertHistory appends one immutable review record.
	InsertHistory(ctx context.Context, h models.ReviewHistory) error
}

// ProgressRepository handles per-(user, item) scheduling state.
type ProgressRepository interface {
	Get(ctx context.Context, userID int64, key models.ItemKey) (*models.Progress, error)
	// ListDue returns grasped items of the domain whose next review is at
	// or before now, ordered by next_review then row id.
	ListDue(ctx context.Context, userID, domainID int64, filter models.KindFilter, now time.Time) ([]models.DueItem, error)
	// InTx runs fn inside a single transaction; any error rolls back
	// every write fn performed.
	InTx(ctx context.Context, fn func(ProgressTx) error) error
}

// EdgeRepository handles the weighted prerequisite relation.
type EdgeRepository interface {
	ListByDomain(ctx context.Context, domainID int64) ([]models.PrerequisiteEdge, error)
	Insert(ctx context.Context, e models.PrerequisiteEdge) (int64, error)
}

// ItemRepository handles item display metadata.
type ItemRepository interface {
	Get(ctx context.Context, key models.ItemKey) (*models.Item, error)
	Insert(ctx context.Context, item models.Item) error
}

// SessionRepository handles study sessions. Counters are a write-only
// side channel; the engine never reads them back.
type SessionRepository interface {
	Create(ctx context.Context, userID int64) (*models.StudySession, error)
	Get(ctx context.Context, id string) (*models.StudySession, error)
	RecordReview(ctx context.Context, id string, success bool) error
	End(ctx context.Context, id string) error
}
