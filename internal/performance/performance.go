// Package performance tracks how well each card is remembered.
package performance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/fsrs"
)

const (
	TargetRecall = 0.9
	MinInterval  = 1
	MaxInterval  = 256
)

// Reviewed is the scheduling state of a card seen at least once. IntervalRaw
// is the unrounded FSRS interval in days.
type Reviewed struct {
	LastReviewedAt datetime.Timestamp `json:"last_reviewed_at"`
	Stability      float64            `json:"stability"`
	Difficulty     float64            `json:"difficulty"`
	IntervalRaw    float64            `json:"interval_raw"`
	IntervalDays   int                `json:"interval_days"`
	DueDate        datetime.Date      `json:"due_date"`
	ReviewCount    int                `json:"review_count"`
}

// Performance is either New or a Reviewed record. The zero value is New.
type Performance struct {
	reviewed *Reviewed
}

var New = Performance{}

func FromReviewed(r Reviewed) Performance {
	return Performance{reviewed: &r}
}

func (p Performance) IsNew() bool {
	return p.reviewed == nil
}

func (p Performance) Reviewed() (Reviewed, bool) {
	if p.reviewed == nil {
		return Reviewed{}, false
	}
	return *p.reviewed, true
}

// IsDue reports whether the card may be shown on the given day. New cards are
// always due.
func (p Performance) IsDue(today datetime.Date) bool {
	if p.reviewed == nil {
		return true
	}
	return !p.reviewed.DueDate.After(today)
}

func (p Performance) ReviewCount() int {
	if p.reviewed == nil {
		return 0
	}
	return p.reviewed.ReviewCount
}

func (p Performance) Equal(other Performance) bool {
	if p.reviewed == nil || other.reviewed == nil {
		return p.reviewed == nil && other.reviewed == nil
	}
	return *p.reviewed == *other.reviewed
}

// MarshalJSON encodes New as the string "New" and a reviewed card as
// {"Reviewed": {...}}.
func (p Performance) MarshalJSON() ([]byte, error) {
	if p.reviewed == nil {
		return []byte(`"New"`), nil
	}
	return json.Marshal(struct {
		Reviewed Reviewed `json:"Reviewed"`
	}{*p.reviewed})
}

func (p *Performance) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte(`"New"`)) {
		*p = New
		return nil
	}
	var wrapper struct {
		Reviewed *Reviewed `json:"Reviewed"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return fmt.Errorf("decode performance: %w", err)
	}
	if wrapper.Reviewed == nil {
		return fmt.Errorf("decode performance: unknown variant %s", data)
	}
	*p = FromReviewed(*wrapper.Reviewed)
	return nil
}

// Update grades a card at the given time and returns its new schedule. g must
// be a valid grade; Update panics otherwise.
func Update(p Performance, g fsrs.Grade, reviewedAt datetime.Timestamp) Reviewed {
	today := reviewedAt.Date()

	var stability, difficulty float64
	var reviewCount int
	if prev, ok := p.Reviewed(); ok {
		elapsed := float64(today.DaysSince(prev.LastReviewedAt.Date()))
		recall := fsrs.Retrievability(elapsed, prev.Stability)
		stability = fsrs.NewStability(prev.Difficulty, prev.Stability, recall, g)
		difficulty = fsrs.NewDifficulty(prev.Difficulty, g)
		reviewCount = prev.ReviewCount
	} else {
		stability = fsrs.InitialStability(g)
		difficulty = fsrs.InitialDifficulty(g)
	}

	raw := fsrs.Interval(TargetRecall, stability)
	days := int(math.Max(MinInterval, math.Min(MaxInterval, math.Round(raw))))

	return Reviewed{
		LastReviewedAt: reviewedAt,
		Stability:      stability,
		Difficulty:     difficulty,
		IntervalRaw:    raw,
		IntervalDays:   days,
		DueDate:        today.AddDays(days),
		ReviewCount:    reviewCount + 1,
	}
}
