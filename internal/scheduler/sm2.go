package scheduler

import (
	"math"
	"time"
)

// PassThreshold is the lowest quality that counts as a successful recall.
const PassThreshold = 3

// DefaultImplicitQuality is the quality used when accumulated indirect
// credit substitutes for one real review.
const DefaultImplicitQuality = 4

// State is the scheduling state of one item before a review.
type State struct {
	EaseFactor   float64
	IntervalDays float64
	Repetitions  int
}

// Result is the scheduling state after a review.
type Result struct {
	EaseFactor   float64
	IntervalDays float64
	Repetitions  int
	NextReview   time.Time
}

// Apply runs one SM-2 update for a quality rating in [0, 5].
// Total and side-effect free; it never errors.
func Apply(s State, quality int, now time.Time) Result {
	miss := float64(5 - quality)
	ease := s.EaseFactor + (0.1 - miss*(0.08+miss*0.02))
	if ease < 1.3 {
		ease = 1.3
	}

	var interval float64
	var reps int
	if quality < PassThreshold {
		// Failure resets the progression.
		reps = 0
		interval = 1
	} else {
		reps = s.Repetitions + 1
		switch reps {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			interval = math.Round(s.IntervalDays * ease)
		}
	}

	return Result{
		EaseFactor:   ease,
		IntervalDays: interval,
		Repetitions:  reps,
		NextReview:   now.Add(time.Duration(interval * 24 * float64(time.Hour))),
	}
}
