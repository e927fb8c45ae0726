// Package parser extracts cards from deck files.
//
// A deck is plain text. "Q:" opens a question, "A:" its answer, and "C:" a
// cloze sentence whose bracketed spans become one card each. A line of
// "---" separates cards. Any other line continues the open card.
package parser

import (
	"strings"

	"github.com/samber/lo"

	"github.com/kpauljoseph/hashcards/internal/card"
	"github.com/kpauljoseph/hashcards/internal/hash"
)

type Parser struct {
	deckName   string
	sourcePath string
}

func New(deckName, sourcePath string) *Parser {
	return &Parser{deckName: deckName, sourcePath: sourcePath}
}

type state int

const (
	stateStart state = iota
	stateQuestion
	stateAnswer
	stateCloze
	stateEnd
)

type machine struct {
	p         *Parser
	state     state
	question  string
	answer    string
	cloze     string
	startLine int
	cards     []card.Card
}

// Parse returns the cards in text, deduplicated by hash with the first
// occurrence kept. Any structural error aborts the whole file.
func (p *Parser) Parse(text string) ([]card.Card, error) {
	m := &machine{p: p}
	lines := splitLines(text)
	for num, raw := range lines {
		if err := m.step(classify(raw), num); err != nil {
			return nil, err
		}
	}
	lastLine := 0
	if len(lines) > 0 {
		lastLine = len(lines) - 1
	}
	if err := m.step(line{kind: lineEOF}, lastLine); err != nil {
		return nil, err
	}

	return lo.UniqBy(m.cards, func(c card.Card) hash.Hash { return c.Hash() }), nil
}

func (m *machine) step(l line, num int) error {
	switch m.state {
	case stateStart:
		return m.fromStart(l, num)
	case stateQuestion:
		return m.fromQuestion(l, num)
	case stateAnswer:
		return m.fromAnswer(l, num)
	case stateCloze:
		return m.fromCloze(l, num)
	default:
		panic("parser: line after end of input")
	}
}

func (m *machine) fromStart(l line, num int) error {
	switch l.kind {
	case lineQuestion:
		m.openQuestion(l.text, num)
	case lineAnswer:
		return m.fail(msgAnswerWithoutQuestion, num)
	case lineCloze:
		m.openCloze(l.text, num)
	case lineEOF:
		m.state = stateEnd
	}
	return nil
}

func (m *machine) fromQuestion(l line, num int) error {
	switch l.kind {
	case lineQuestion:
		return m.fail(msgQuestionWithoutAnswer, num)
	case lineAnswer:
		m.answer = l.text
		m.state = stateAnswer
	case lineCloze:
		return m.fail(msgClozeInQuestion, num)
	case lineSeparator:
		return m.fail(msgSeparatorInQuestion, num)
	case lineText:
		m.question += "\n" + l.text
	case lineEOF:
		return m.fail(msgEOFInQuestion, num)
	}
	return nil
}

func (m *machine) fromAnswer(l line, num int) error {
	switch l.kind {
	case lineAnswer:
		return m.fail(msgAnswerInAnswer, num)
	case lineText:
		m.answer += "\n" + l.text
		return nil
	}

	m.cards = append(m.cards, card.New(
		m.p.deckName,
		m.p.sourcePath,
		card.Span{Start: m.startLine, End: num},
		card.Basic{
			Question: strings.TrimSpace(m.question),
			Answer:   strings.TrimSpace(m.answer),
		},
	))
	m.advance(l, num)
	return nil
}

func (m *machine) fromCloze(l line, num int) error {
	switch l.kind {
	case lineAnswer:
		return m.fail(msgAnswerInCloze, num)
	case lineText:
		m.cloze += "\n" + l.text
		return nil
	}

	cards, err := m.p.clozeCards(m.cloze, m.startLine, num)
	if err != nil {
		return err
	}
	m.cards = append(m.cards, cards...)
	m.advance(l, num)
	return nil
}

// advance moves on after the open card was finalized by l.
func (m *machine) advance(l line, num int) {
	switch l.kind {
	case lineQuestion:
		m.openQuestion(l.text, num)
	case lineCloze:
		m.openCloze(l.text, num)
	case lineSeparator:
		m.state = stateStart
	case lineEOF:
		m.state = stateEnd
	}
}

func (m *machine) openQuestion(text string, num int) {
	m.state = stateQuestion
	m.question = text
	m.answer = ""
	m.startLine = num
}

func (m *machine) openCloze(text string, num int) {
	m.state = stateCloze
	m.cloze = text
	m.startLine = num
}

func (m *machine) fail(message string, num int) error {
	return newError(message, m.p.sourcePath, num)
}
