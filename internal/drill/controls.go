package drill

import (
	"fmt"

	"github.com/kpauljoseph/hashcards/internal/fsrs"
)

// AnswerControls selects which grades the learner is offered.
type AnswerControls int

const (
	FullControls AnswerControls = iota
	BinaryControls
)

func ParseAnswerControls(s string) (AnswerControls, error) {
	switch s {
	case "full":
		return FullControls, nil
	case "binary":
		return BinaryControls, nil
	default:
		return FullControls, fmt.Errorf("unknown answer controls %q (want full or binary)", s)
	}
}

func (a AnswerControls) String() string {
	if a == BinaryControls {
		return "binary"
	}
	return "full"
}

func (a AnswerControls) Grades() []fsrs.Grade {
	if a == BinaryControls {
		return []fsrs.Grade{fsrs.Forgot, fsrs.Good}
	}
	return fsrs.Grades
}

// Allows reports whether g is one of the offered grades.
func (a AnswerControls) Allows(g fsrs.Grade) bool {
	for _, offered := range a.Grades() {
		if offered == g {
			return true
		}
	}
	return false
}
