package parser

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Metadata is the optional TOML header of a deck file.
type Metadata struct {
	Name string `toml:"name"`
}

// SplitFrontmatter separates a leading header, fenced by "---" lines, from the
// deck body. Input without a header is returned unchanged.
func SplitFrontmatter(source, text string) (Metadata, string, error) {
	var meta Metadata

	lines := splitLines(text)
	if len(lines) == 0 || !isSeparator(lines[0]) {
		return meta, text, nil
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if isSeparator(lines[i]) {
			closing = i
			break
		}
	}
	if closing < 0 {
		return meta, "", newError(msgFrontmatterUnclosed, source, 0)
	}

	header := strings.Join(lines[1:closing], "\n")
	if err := toml.Unmarshal([]byte(header), &meta); err != nil {
		return Metadata{}, "", newError(fmt.Sprintf("%s %v", msgFrontmatterInvalid, err), source, 0)
	}

	return meta, bodyAfterLine(text, closing), nil
}

// bodyAfterLine returns the text following the given 0-based line.
func bodyAfterLine(text string, line int) string {
	pos := 0
	for i := 0; i <= line; i++ {
		nl := strings.IndexByte(text[pos:], '\n')
		if nl < 0 {
			return ""
		}
		pos += nl + 1
	}
	return text[pos:]
}
