// Package fsrs implements the FSRS memory model: recall probability as a
// function of elapsed time and stability, and the stability/difficulty
// updates that follow each review.
package fsrs

import (
	"fmt"
	"math"
)

// W is the default parameter vector.
var W = [19]float64{
	0.40255, 1.18385, 3.173, 15.69105, 7.1949, 0.5345, 1.4604, 0.0046, 1.54575, 0.1192, 1.01925,
	1.9395, 0.11, 0.29605, 2.2698, 0.2315, 2.9898, 0.51655, 0.6621,
}

const (
	factor = 19.0 / 81.0
	decay  = -0.5

	MinDifficulty = 1.0
	MaxDifficulty = 10.0
)

// Retrievability is the probability of recall after elapsed days for a card
// of the given stability.
func Retrievability(elapsed, stability float64) float64 {
	return math.Pow(1+factor*(elapsed/stability), decay)
}

// Interval is the number of days after which retrievability falls to
// targetRecall. Interval(0.9, s) == s.
func Interval(targetRecall, stability float64) float64 {
	return (stability / factor) * (math.Pow(targetRecall, 1/decay) - 1)
}

// The functions below take a grade from Forgot to Easy and panic on any other
// value.

func InitialStability(g Grade) float64 {
	switch g {
	case Forgot:
		return W[0]
	case Hard:
		return W[1]
	case Good:
		return W[2]
	case Easy:
		return W[3]
	default:
		panic(invalidGrade(g))
	}
}

func InitialDifficulty(g Grade) float64 {
	mustBeValid(g)
	return clampDifficulty(W[4] - math.Exp(W[5]*(float64(g)-1)) + 1)
}

// NewStability is the stability after a review at recall probability r.
func NewStability(d, s, r float64, g Grade) float64 {
	mustBeValid(g)
	if g == Forgot {
		return stabilityAfterFailure(d, s, r)
	}
	return stabilityAfterSuccess(d, s, r, g)
}

func stabilityAfterSuccess(d, s, r float64, g Grade) float64 {
	hardPenalty, easyBonus := 1.0, 1.0
	switch g {
	case Hard:
		hardPenalty = W[15]
	case Easy:
		easyBonus = W[16]
	}
	growth := (11 - d) *
		math.Pow(s, -W[9]) *
		(math.Exp(W[10]*(1-r)) - 1) *
		hardPenalty * easyBonus *
		math.Exp(W[8])
	return s * (1 + growth)
}

// stabilityAfterFailure never exceeds the stability before the lapse.
func stabilityAfterFailure(d, s, r float64) float64 {
	next := math.Pow(d, -W[12]) *
		(math.Pow(s+1, W[13]) - 1) *
		math.Exp(W[14]*(1-r)) *
		W[11]
	return math.Min(next, s)
}

// NewDifficulty moves d by the grade's delta, damped near the ceiling, and
// reverts it slightly towards the easiest initial difficulty.
func NewDifficulty(d float64, g Grade) float64 {
	mustBeValid(g)
	delta := -W[6] * (float64(g) - 3)
	damped := d + delta*((10-d)/9)
	return clampDifficulty(W[7]*InitialDifficulty(Easy) + (1-W[7])*damped)
}

func clampDifficulty(d float64) float64 {
	return math.Max(MinDifficulty, math.Min(MaxDifficulty, d))
}

func mustBeValid(g Grade) {
	if !g.IsValid() {
		panic(invalidGrade(g))
	}
}

func invalidGrade(g Grade) string {
	return fmt.Sprintf("fsrs: %v: %d", ErrInvalidGrade, int(g))
}
