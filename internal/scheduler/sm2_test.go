package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelar/recallgraph/internal/scheduler"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestApply_PerfectRecall(t *testing.T) {
	res := scheduler.Apply(scheduler.State{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2}, 5, now)

	assert.InDelta(t, 2.6, res.EaseFactor, 1e-9)
	assert.Equal(t, 3, res.Repetitions)
	assert.Equal(t, 16.0, res.IntervalDays, "round(6 * 2.6)")
	assert.Equal(t, now.Add(16*24*time.Hour), res.NextReview)
}

func TestApply_FailureResetsProgression(t *testing.T) {
	for quality := 0; quality < 3; quality++ {
		res := scheduler.Apply(scheduler.State{EaseFactor: 2.5, IntervalDays: 30, Repetitions: 7}, quality, now)

		assert.Equal(t, 0, res.Repetitions, "quality %d", quality)
		assert.Equal(t, 1.0, res.IntervalDays, "quality %d", quality)
		assert.Equal(t, now.Add(24*time.Hour), res.NextReview)
		assert.Less(t, res.EaseFactor, 2.5, "failures lower easiness")
	}
}

func TestApply_IntervalLadder(t *testing.T) {
	tests := []struct {
		name     string
		state    scheduler.State
		quality  int
		interval float64
		reps     int
	}{
		{"first success", scheduler.State{EaseFactor: 2.5}, 4, 1, 1},
		{"second success", scheduler.State{EaseFactor: 2.5, IntervalDays: 1, Repetitions: 1}, 4, 6, 2},
		{"third success multiplies", scheduler.State{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2}, 4, 15, 3},
		{"minimal pass", scheduler.State{EaseFactor: 2.5, IntervalDays: 10, Repetitions: 3}, 3, 24, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scheduler.Apply(tt.state, tt.quality, now)
			assert.Equal(t, tt.interval, res.IntervalDays)
			assert.Equal(t, tt.reps, res.Repetitions)
			assert.True(t, res.NextReview.After(now))
		})
	}
}

func TestApply_EaseFloor(t *testing.T) {
	s := scheduler.State{EaseFactor: 1.3, IntervalDays: 5, Repetitions: 2}
	for i := 0; i < 10; i++ {
		res := scheduler.Apply(s, 0, now)
		assert.GreaterOrEqual(t, res.EaseFactor, 1.3)
		s.EaseFactor = res.EaseFactor
	}
}

func TestApply_QualityFiveRaisesEase(t *testing.T) {
	res := scheduler.Apply(scheduler.State{EaseFactor: 2.0, IntervalDays: 6, Repetitions: 2}, 5, now)
	assert.InDelta(t, 2.1, res.EaseFactor, 1e-9)

	res = scheduler.Apply(scheduler.State{EaseFactor: 2.0, IntervalDays: 6, Repetitions: 2}, 4, now)
	assert.InDelta(t, 2.0, res.EaseFactor, 1e-9, "quality 4 keeps easiness unchanged")
}

func TestApply_FractionalIntervalRounds(t *testing.T) {
	res := scheduler.Apply(scheduler.State{EaseFactor: 1.3, IntervalDays: 2.5, Repetitions: 2}, 3, now)
	// Ease stays floored at 1.3, so 2.5 * 1.3 = 3.25 -> 3 after rounding.
	assert.Equal(t, 3.0, res.IntervalDays)
}
