package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kpauljoseph/hashcards/internal/drill"
	"github.com/kpauljoseph/hashcards/internal/fsrs"
)

// terminal drives a session from line-oriented input.
type terminal struct {
	out      io.Writer
	controls drill.AnswerControls
}

func newTerminal(out io.Writer, controls drill.AnswerControls) *terminal {
	return &terminal{out: out, controls: controls}
}

func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// run shows cards until the session finishes. Cancellation and end of input
// interrupt the session.
func (t *terminal) run(ctx context.Context, s *drill.Session, in io.Reader) error {
	lines := readLines(ctx, in)
	for !s.Finished() {
		t.show(s)

		var input string
		select {
		case <-ctx.Done():
			fmt.Fprintln(t.out)
			return s.Interrupt()
		case line, ok := <-lines:
			if !ok {
				return s.Interrupt()
			}
			input = strings.ToLower(strings.TrimSpace(line))
		}

		if err := t.handle(ctx, s, input); err != nil {
			return err
		}
	}
	return nil
}

func (t *terminal) handle(ctx context.Context, s *drill.Session, input string) error {
	switch input {
	case "", "r", "reveal":
		return s.Reveal()
	case "u", "undo":
		return s.Undo(ctx)
	case "q", "quit":
		return s.End()
	}

	g, ok := t.parseGrade(input)
	if !ok {
		fmt.Fprintf(t.out, "Unknown input %q\n", input)
		return nil
	}
	return s.Grade(ctx, g)
}

// parseGrade accepts the number shown next to a grade or its name.
func (t *terminal) parseGrade(input string) (fsrs.Grade, bool) {
	grades := t.controls.Grades()
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(grades) {
			return 0, false
		}
		return grades[n-1], true
	}
	g, err := fsrs.ParseGrade(input)
	if err != nil || !t.controls.Allows(g) {
		return 0, false
	}
	return g, true
}

func (t *terminal) show(s *drill.Session) {
	c, ok := s.Current()
	if !ok {
		return
	}
	fmt.Fprintf(t.out, "\n[%3.0f%%] %s (%s)\n", s.Progress()*100, c.DeckName, c.Location())
	fmt.Fprintf(t.out, "Q: %s\n", c.Front())
	if !s.Revealed() {
		fmt.Fprintln(t.out, "[enter] reveal  [u] undo  [q] quit")
		return
	}

	fmt.Fprintf(t.out, "A: %s\n", c.Back())
	var prompt []string
	for i, g := range t.controls.Grades() {
		prompt = append(prompt, fmt.Sprintf("[%d] %s", i+1, g.Title()))
	}
	prompt = append(prompt, "[u] undo", "[q] quit")
	fmt.Fprintln(t.out, strings.Join(prompt, "  "))
}

func (t *terminal) summary(s *drill.Session) {
	elapsed := "0s"
	if finishedAt, ok := s.FinishedAt(); ok {
		elapsed = finishedAt.Time().Sub(s.StartedAt().Time()).String()
	}
	fmt.Fprintf(t.out, "\nReviewed %d cards in %s. %d left.\n", s.Reviewed(), elapsed, s.Remaining())
}
