package worker

import (
	"context"
	"fmt"

	"github.com/avelar/recallgraph/internal/repository"
)

// SessionTouchJob bumps the counters of a study session after a review.
// Counters are best-effort; losing one never fails the review itself.
type SessionTouchJob struct {
	Sessions  repository.SessionRepository
	SessionID string
	Success   bool
}

func (j SessionTouchJob) Name() string {
	return fmt.Sprintf("session-touch:%s", j.SessionID)
}

func (j SessionTouchJob) Run(ctx context.Context) error {
	return j.Sessions.RecordReview(ctx, j.SessionID, j.Success)
}
