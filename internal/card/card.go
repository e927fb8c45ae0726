// Package card defines the unit of study material produced by the parser.
package card

import (
	"encoding/binary"
	"fmt"

	"github.com/kpauljoseph/hashcards/internal/hash"
)

// Content is either Basic or Cloze. The interface is sealed; every consumer
// switches over the two variants.
type Content interface {
	hash() hash.Hash
	isContent()
}

type Basic struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Cloze is a sentence with one deleted span. Start and End are byte offsets
// into Text; End is inclusive.
type Cloze struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func (Basic) isContent() {}
func (Cloze) isContent() {}

// Variable-length fields are hashed with a uint64 little-endian length
// prefix so that no two field splits share an encoding.
func (b Basic) hash() hash.Hash {
	h := hash.NewHasher().UpdateString("Basic")
	writeField(h, b.Question)
	writeField(h, b.Answer)
	return h.Finalize()
}

func (c Cloze) hash() hash.Hash {
	h := hash.NewHasher().UpdateString("Cloze")
	writeField(h, c.Text)
	writeUint(h, uint64(c.Start))
	writeUint(h, uint64(c.End))
	return h.Finalize()
}

func writeField(h *hash.Hasher, s string) {
	writeUint(h, uint64(len(s)))
	h.UpdateString(s)
}

func writeUint(h *hash.Hasher, n uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	h.Update(buf[:])
}

// Deleted returns the hidden part of the sentence.
func (c Cloze) Deleted() string {
	return c.Text[c.Start : c.End+1]
}

// Span is the 0-based range of source lines a card was parsed from.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type Card struct {
	DeckName   string
	SourcePath string
	Span       Span
	Content    Content

	hash       hash.Hash
	familyHash *hash.Hash
}

func New(deckName, sourcePath string, span Span, content Content) Card {
	c := Card{
		DeckName:   deckName,
		SourcePath: sourcePath,
		Span:       span,
		Content:    content,
		hash:       content.hash(),
	}
	if cloze, ok := content.(Cloze); ok {
		family := hash.Sum([]byte(cloze.Text))
		c.familyHash = &family
	}
	return c
}

// Hash identifies the card by content alone.
func (c Card) Hash() hash.Hash {
	return c.hash
}

// FamilyHash groups cloze cards cut from the same sentence. Basic cards have
// no family.
func (c Card) FamilyHash() (hash.Hash, bool) {
	if c.familyHash == nil {
		return hash.Hash{}, false
	}
	return *c.familyHash, true
}

func (c Card) IsCloze() bool {
	_, ok := c.Content.(Cloze)
	return ok
}

// Front is the prompt shown before reveal.
func (c Card) Front() string {
	switch content := c.Content.(type) {
	case Basic:
		return content.Question
	case Cloze:
		return content.Text[:content.Start] + "[...]" + content.Text[content.End+1:]
	default:
		panic(fmt.Sprintf("card: unknown content %T", c.Content))
	}
}

// Back is the full answer shown after reveal.
func (c Card) Back() string {
	switch content := c.Content.(type) {
	case Basic:
		return content.Answer
	case Cloze:
		return content.Text[:content.Start] + "[" + content.Deleted() + "]" + content.Text[content.End+1:]
	default:
		panic(fmt.Sprintf("card: unknown content %T", c.Content))
	}
}

func (c Card) Location() string {
	return fmt.Sprintf("%s:%d", c.SourcePath, c.Span.Start+1)
}
