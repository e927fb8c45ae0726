package fsrs

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidGrade = errors.New("invalid grade string")

// Grade is the learner's assessment of a single recall attempt.
type Grade int

const (
	Forgot Grade = iota + 1
	Hard
	Good
	Easy
)

// Grades lists every grade from worst to best.
var Grades = []Grade{Forgot, Hard, Good, Easy}

var (
	gradeNames  = [...]string{Forgot: "forgot", Hard: "hard", Good: "good", Easy: "easy"}
	gradeTitles = [...]string{Forgot: "Forgot", Hard: "Hard", Good: "Good", Easy: "Easy"}
)

func ParseGrade(s string) (Grade, error) {
	for _, g := range Grades {
		if gradeNames[g] == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}

func (g Grade) IsValid() bool {
	return g >= Forgot && g <= Easy
}

// String returns the lowercase form used on the command line and in forms.
func (g Grade) String() string {
	if g.IsValid() {
		return gradeNames[g]
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// Title is the capitalized label shown to the learner.
func (g Grade) Title() string {
	if g.IsValid() {
		return gradeTitles[g]
	}
	return g.String()
}

// Requeues reports whether a card graded g must be seen again in the same
// session.
func (g Grade) Requeues() bool {
	return g == Forgot || g == Hard
}

func (g Grade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return []byte(gradeNames[g]), nil
}

func (g *Grade) UnmarshalText(text []byte) error {
	parsed, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalJSON writes the capitalized name, matching stored review logs.
func (g Grade) MarshalJSON() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return json.Marshal(gradeTitles[g])
}

func (g *Grade) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGrade, data)
	}
	for _, candidate := range Grades {
		if gradeTitles[candidate] == s {
			*g = candidate
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}
