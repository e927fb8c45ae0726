package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/kpauljoseph/hashcards/internal/card"
)

// deletion is a byte range into the clean text. End is inclusive.
type deletion struct {
	start, end int
}

// cleanCloze strips deletion brackets and the escape backslashes that guard
// literal brackets. '[' and ']' belonging to a Markdown image (after "!")
// are kept.
func cleanCloze(text string) []byte {
	clean := make([]byte, 0, len(text))
	imageMode, escapeMode := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '[':
			if imageMode {
				clean = append(clean, c)
			}
			if escapeMode {
				escapeMode = false
				clean = append(clean, c)
			}
		case ']':
			if imageMode {
				imageMode = false
				clean = append(clean, c)
			} else if escapeMode {
				escapeMode = false
				clean = append(clean, c)
			}
		case '!':
			if !imageMode && next(text, i) == '[' {
				imageMode = true
			}
			clean = append(clean, c)
		case '\\':
			if !escapeMode {
				if n := next(text, i); n == '[' || n == ']' {
					escapeMode = true
				} else {
					clean = append(clean, c)
				}
			}
		default:
			clean = append(clean, c)
		}
	}
	return clean
}

// findDeletions walks the same input as cleanCloze, tracking the position in
// the clean output, and returns the offsets of every bracketed span.
func findDeletions(text string) []deletion {
	var deletions []deletion
	start := -1
	index := 0
	imageMode, escapeMode := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '[':
			switch {
			case imageMode:
				index++
			case escapeMode:
				index++
				escapeMode = false
			default:
				start = index
			}
		case ']':
			switch {
			case imageMode:
				imageMode = false
				index++
			case escapeMode:
				escapeMode = false
				index++
			case start >= 0:
				deletions = append(deletions, deletion{start: start, end: index - 1})
				start = -1
			}
		case '!':
			if !imageMode && next(text, i) == '[' {
				imageMode = true
			}
			index++
		case '\\':
			if !escapeMode {
				if n := next(text, i); n == '[' || n == ']' {
					escapeMode = true
				} else {
					index++
				}
			}
		default:
			index++
		}
	}
	return deletions
}

func next(text string, i int) byte {
	if i+1 < len(text) {
		return text[i+1]
	}
	return 0
}

func (p *Parser) clozeCards(raw string, startLine, endLine int) ([]card.Card, error) {
	text := strings.TrimSpace(raw)

	clean := cleanCloze(text)
	if !utf8.Valid(clean) {
		return nil, newError(msgClozeInvalidUTF8, p.sourcePath, startLine)
	}
	cleanText := string(clean)

	deletions := findDeletions(text)
	if len(deletions) == 0 {
		return nil, newError(msgClozeNoDeletions, p.sourcePath, startLine)
	}

	span := card.Span{Start: startLine, End: endLine}
	cards := make([]card.Card, 0, len(deletions))
	for _, d := range deletions {
		cards = append(cards, card.New(p.deckName, p.sourcePath, span, card.Cloze{
			Text:  cleanText,
			Start: d.start,
			End:   d.end,
		}))
	}
	return cards, nil
}
