package adaptive

import (
	"fmt"
	"math"
)

// SlowResponseSeconds is the response time at which a correct answer no
// longer earns a bonus and the streak restarts at 1.
const SlowResponseSeconds = 20

// SlowResetMultiplier is reported when a correct answer was too slow. It is a
// display sentinel, never used for arithmetic.
const SlowResetMultiplier = 0

// StreakResult is the outcome of evaluating one answer.
type StreakResult struct {
	Streak     int
	Multiplier float64
}

// SlowReset reports whether the answer was correct but too slow.
func (r StreakResult) SlowReset() bool {
	return r.Multiplier == SlowResetMultiplier
}

// Label returns a short description of the multiplier for display.
func (r StreakResult) Label() string {
	switch {
	case r.SlowReset():
		return "too slow, streak reset to 1"
	case r.Multiplier > 1:
		return fmt.Sprintf("x%s speed bonus", formatMultiplier(r.Multiplier))
	default:
		return "no bonus"
	}
}

// EvaluateStreak computes the new streak and multiplier for an answer given
// in responseSeconds whole seconds.
//
// Incorrect and unknown answers reset the streak. A correct answer at or past
// SlowResponseSeconds forces the streak to exactly 1. Faster correct answers
// add floor(SpeedMultiplier) to the prior streak.
func EvaluateStreak(outcome Outcome, responseSeconds, priorStreak int) StreakResult {
	if responseSeconds < 0 {
		responseSeconds = 0
	}
	if priorStreak < 0 {
		priorStreak = 0
	}

	// None is treated like an explicit "don't know".
	if outcome != OutcomeCorrect {
		return StreakResult{Streak: 0, Multiplier: 1}
	}

	if responseSeconds >= SlowResponseSeconds {
		return StreakResult{Streak: 1, Multiplier: SlowResetMultiplier}
	}

	m := SpeedMultiplier(responseSeconds)
	increase := int(math.Floor(1 * m))
	return StreakResult{Streak: priorStreak + increase, Multiplier: m}
}

// SpeedMultiplier returns the bonus tier for a response time. Boundaries are
// inclusive on the faster side.
func SpeedMultiplier(seconds int) float64 {
	switch {
	case seconds <= 5:
		return 3
	case seconds <= 10:
		return 2
	case seconds <= 15:
		return 1.5
	default:
		return 1
	}
}

func formatMultiplier(m float64) string {
	if m == math.Trunc(m) {
		return fmt.Sprintf("%d", int(m))
	}
	return fmt.Sprintf("%.1f", m)
}
