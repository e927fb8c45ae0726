package parser

import "strings"

type lineKind int

const (
	lineQuestion lineKind = iota
	lineAnswer
	lineCloze
	lineSeparator
	lineText
	lineEOF
)

type line struct {
	kind lineKind
	text string
}

func classify(raw string) line {
	switch {
	case strings.HasPrefix(raw, "Q:"):
		return line{kind: lineQuestion, text: tagText(raw)}
	case strings.HasPrefix(raw, "A:"):
		return line{kind: lineAnswer, text: tagText(raw)}
	case strings.HasPrefix(raw, "C:"):
		return line{kind: lineCloze, text: tagText(raw)}
	case isSeparator(raw):
		return line{kind: lineSeparator}
	default:
		return line{kind: lineText, text: raw}
	}
}

func tagText(raw string) string {
	return strings.TrimSpace(raw[2:])
}

func isSeparator(raw string) bool {
	return strings.TrimSpace(raw) == "---"
}

// splitLines splits on '\n', drops a trailing '\r' from each line, and does
// not yield an empty final line for input ending in a newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
