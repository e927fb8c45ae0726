// Package store persists card performance between sessions.
package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/fsrs"
	"github.com/kpauljoseph/hashcards/internal/hash"
	"github.com/kpauljoseph/hashcards/internal/performance"
)

// HashSet is a set of card hashes.
type HashSet map[hash.Hash]struct{}

func (s HashSet) Contains(h hash.Hash) bool {
	_, ok := s[h]
	return ok
}

// Records maps each card to its performance. It is the export format.
type Records map[hash.Hash]performance.Performance

// ReviewLog is one grading action of a finished session.
type ReviewLog struct {
	Hash       hash.Hash            `json:"card_hash"`
	ReviewedAt datetime.Timestamp   `json:"reviewed_at"`
	Grade      fsrs.Grade           `json:"grade"`
	Result     performance.Reviewed `json:"result"`
}

type SessionLog struct {
	ID        string             `json:"session_id"`
	StartedAt datetime.Timestamp `json:"started_at"`
	EndedAt   datetime.Timestamp `json:"ended_at"`
	Reviews   []ReviewLog        `json:"reviews"`
}

func WriteJSON(w io.Writer, records Records) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode performance: %w", err)
	}
	return nil
}

func ReadJSON(r io.Reader) (Records, error) {
	var records Records
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode performance: %w", err)
	}
	return records, nil
}
