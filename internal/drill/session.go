// Package drill runs review sessions over the cards due today.
package drill

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/kpauljoseph/hashcards/internal/card"
	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/fsrs"
	"github.com/kpauljoseph/hashcards/internal/hash"
	"github.com/kpauljoseph/hashcards/internal/performance"
	"github.com/kpauljoseph/hashcards/internal/store"
	"github.com/kpauljoseph/hashcards/pkg/logger"
)

var (
	ErrNoCurrentCard      = errors.New("no card to review")
	ErrSessionFinished    = errors.New("session already finished")
	ErrSessionInterrupted = errors.New("session interrupted before completion")
)

// PerformanceStore is where grading results are read from and written to.
type PerformanceStore interface {
	Get(ctx context.Context, h hash.Hash) (performance.Performance, error)
	Set(ctx context.Context, h hash.Hash, p performance.Performance) error
}

// Review is one completed grading action.
type Review struct {
	Card       card.Card
	Prior      performance.Performance
	Grade      fsrs.Grade
	Result     performance.Reviewed
	ReviewedAt datetime.Timestamp
}

// Session is the state of one drill. All methods are safe for concurrent use;
// actions are serialized and either apply fully or leave the session as it
// was.
type Session struct {
	mu sync.Mutex

	id    uuid.UUID
	store PerformanceStore
	log   *logger.Logger
	clock func() datetime.Timestamp

	// pending is drained from the tail; the last element is the current card.
	pending  []card.Card
	revealed bool
	history  []Review
	total    int

	startedAt  datetime.Timestamp
	finishedAt *datetime.Timestamp
}

type SessionOption func(*Session)

func WithClock(clock func() datetime.Timestamp) SessionOption {
	return func(s *Session) {
		s.clock = clock
	}
}

func WithLogger(log *logger.Logger) SessionOption {
	return func(s *Session) {
		s.log = log
	}
}

func WithSessionID(id uuid.UUID) SessionOption {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession starts a session over queue, shown first to last.
func NewSession(queue []card.Card, perf PerformanceStore, opts ...SessionOption) *Session {
	s := &Session{
		id:    uuid.New(),
		store: perf,
		log:   logger.Discard(),
		clock: datetime.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.pending = slices.Clone(queue)
	slices.Reverse(s.pending)
	s.total = len(queue)
	s.startedAt = s.clock()
	if len(s.pending) == 0 {
		s.finish()
	}

	s.log.Debug("Session %s started with %d cards", s.id, s.total)
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Current() (card.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

func (s *Session) current() (card.Card, bool) {
	if len(s.pending) == 0 {
		return card.Card{}, false
	}
	return s.pending[len(s.pending)-1], true
}

func (s *Session) Revealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed
}

// Reveal shows the answer of the current card. It does nothing when no card
// is left.
func (s *Session) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finishedAt != nil {
		return ErrSessionFinished
	}
	if len(s.pending) > 0 {
		s.revealed = true
	}
	return nil
}

// Grade records the learner's recall of the current card. Forgot and Hard
// put the card back at the front of the queue, behind every pending card.
func (s *Session) Grade(ctx context.Context, g fsrs.Grade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finishedAt != nil {
		return ErrSessionFinished
	}
	if !g.IsValid() {
		return fmt.Errorf("%w: %d", fsrs.ErrInvalidGrade, int(g))
	}
	c, ok := s.current()
	if !ok {
		return ErrNoCurrentCard
	}

	prior, err := s.store.Get(ctx, c.Hash())
	if err != nil {
		return fmt.Errorf("get performance of %s: %w", c.Location(), err)
	}
	now := s.clock()
	result := performance.Update(prior, g, now)
	if err := s.store.Set(ctx, c.Hash(), performance.FromReviewed(result)); err != nil {
		return fmt.Errorf("save performance of %s: %w", c.Location(), err)
	}

	s.pending = s.pending[:len(s.pending)-1]
	if g.Requeues() {
		s.pending = slices.Insert(s.pending, 0, c)
	}
	s.history = append(s.history, Review{
		Card:       c,
		Prior:      prior,
		Grade:      g,
		Result:     result,
		ReviewedAt: now,
	})
	s.revealed = false

	s.log.Debug("Graded %s as %s, next due %s", c.Location(), g, result.DueDate)
	if len(s.pending) == 0 {
		s.finish()
	}
	return nil
}

// Undo reverts the last grade: the card's previous performance is restored
// and it becomes the current card again. It does nothing without history.
func (s *Session) Undo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finishedAt != nil {
		return ErrSessionFinished
	}
	if len(s.history) == 0 {
		return nil
	}

	last := s.history[len(s.history)-1]
	if err := s.store.Set(ctx, last.Card.Hash(), last.Prior); err != nil {
		return fmt.Errorf("restore performance of %s: %w", last.Card.Location(), err)
	}

	// A requeued copy is still at the front; later actions were undone first.
	if last.Grade.Requeues() {
		s.pending = s.pending[1:]
	}
	s.pending = append(s.pending, last.Card)
	s.history = s.history[:len(s.history)-1]
	s.revealed = false

	s.log.Debug("Undid %s grade of %s", last.Grade, last.Card.Location())
	return nil
}

// End finishes the session regardless of the cards left.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finishedAt != nil {
		return ErrSessionFinished
	}
	s.finish()
	return nil
}

// Interrupt finishes the session on shutdown. It returns
// ErrSessionInterrupted if cards were still pending.
func (s *Session) Interrupt() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finishedAt != nil {
		return nil
	}
	s.finish()
	return ErrSessionInterrupted
}

func (s *Session) finish() {
	now := s.clock()
	s.finishedAt = &now
	s.revealed = false
	s.log.Debug("Session %s finished after %d reviews", s.id, len(s.history))
}

func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishedAt != nil
}

func (s *Session) FinishedAt() (datetime.Timestamp, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finishedAt == nil {
		return datetime.Timestamp{}, false
	}
	return *s.finishedAt, true
}

func (s *Session) StartedAt() datetime.Timestamp {
	return s.startedAt
}

func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Session) Total() int {
	return s.total
}

// Reviewed counts grading actions, including repeats of requeued cards.
func (s *Session) Reviewed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Progress is the share of the session's cards no longer pending.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.total == 0 {
		return 1
	}
	return float64(s.total-len(s.pending)) / float64(s.total)
}

func (s *Session) History() []Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Log summarizes a finished session for storage.
func (s *Session) Log() (store.SessionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finishedAt == nil {
		return store.SessionLog{}, errors.New("session still in progress")
	}
	reviews := make([]store.ReviewLog, 0, len(s.history))
	for _, r := range s.history {
		reviews = append(reviews, store.ReviewLog{
			Hash:       r.Card.Hash(),
			ReviewedAt: r.ReviewedAt,
			Grade:      r.Grade,
			Result:     r.Result,
		})
	}
	return store.SessionLog{
		ID:        s.id.String(),
		StartedAt: s.startedAt,
		EndedAt:   *s.finishedAt,
		Reviews:   reviews,
	}, nil
}
