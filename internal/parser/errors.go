package parser

import "fmt"

// Error is a structural problem in a deck file. Line is 0-based.
type Error struct {
	Message string
	Source  string
	Line    int
}

func newError(message, source string, line int) *Error {
	return &Error{Message: message, Source: source, Line: line}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s Location: %s:%d", e.Message, e.Source, e.Line+1)
}

const (
	msgAnswerWithoutQuestion = "Found answer tag without a question."
	msgQuestionWithoutAnswer = "New question without answer."
	msgClozeInQuestion       = "Found cloze tag while reading a question."
	msgSeparatorInQuestion   = "Found flashcard separator while reading a question."
	msgAnswerInAnswer        = "Found answer tag while reading an answer."
	msgAnswerInCloze         = "Found answer tag while reading a cloze card."
	msgEOFInQuestion         = "File ended while reading a question without an answer."
	msgClozeInvalidUTF8      = "Cloze card contains invalid UTF-8."
	msgClozeNoDeletions      = "Cloze card must contain at least one cloze deletion."
	msgFrontmatterUnclosed   = "Frontmatter opening '---' found but no closing '---'"
	msgFrontmatterInvalid    = "Failed to parse TOML frontmatter:"
)
