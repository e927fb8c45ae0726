package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kpauljoseph/hashcards/internal/config"
	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/drill"
	"github.com/kpauljoseph/hashcards/internal/store"
)

var drillCmd = &cobra.Command{
	Use:   "drill [dir]",
	Short: "Review the cards due today",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts, controls, err := drillOptions(cmd, cfg.Drill)
		if err != nil {
			return err
		}

		cards, st, err := openCollection(ctx, collectionDir(args))
		if err != nil {
			return err
		}
		defer closeStore(st)

		now := datetime.Now()
		due, err := drill.DueToday(ctx, st, cards, now)
		if err != nil {
			return fmt.Errorf("find due cards: %w", err)
		}
		queue, err := drill.BuildQueue(ctx, cards, due, st, opts...)
		if err != nil {
			return fmt.Errorf("build review queue: %w", err)
		}
		if len(queue) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No cards due today.")
			return nil
		}

		session := drill.NewSession(queue, st, drill.WithLogger(log))
		log.Info("Starting session with %d of %d due cards", len(queue), len(due))

		term := newTerminal(cmd.OutOrStdout(), controls)
		return finishSession(ctx, st, term, session, term.run(ctx, session, cmd.InOrStdin()))
	},
}

type sessionSaver interface {
	SaveSession(ctx context.Context, log store.SessionLog) error
}

// finishSession stores the log of a session that completed or was
// interrupted, then prints its summary. An interruption is still returned
// after the log is saved.
func finishSession(ctx context.Context, saver sessionSaver, term *terminal, s *drill.Session, runErr error) error {
	if runErr != nil && !errors.Is(runErr, drill.ErrSessionInterrupted) {
		return runErr
	}

	sessionLog, err := s.Log()
	if err != nil {
		return err
	}
	if err := saver.SaveSession(context.WithoutCancel(ctx), sessionLog); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	term.summary(s)

	if runErr != nil {
		log.Info("Session interrupted with %d cards left", s.Remaining())
		return runErr
	}
	return nil
}

func init() {
	rootCmd.AddCommand(drillCmd)

	addDrillFlags(drillCmd.Flags())
}

func addDrillFlags(flags *pflag.FlagSet) {
	flags.Int("card-limit", 0, "maximum number of cards to review")
	flags.Int("new-card-limit", 0, "maximum number of new cards to review")
	flags.String("from-deck", "", "only review cards from this deck")
	flags.Bool("bury-siblings", true, "show at most one card per cloze family")
	flags.Bool("shuffle", true, "shuffle the review queue")
	flags.String("answer-controls", "full", "grades offered: full or binary")
}

// drillOptions merges the drill flags that were set over the configured
// defaults.
func drillOptions(cmd *cobra.Command, d config.Drill) ([]drill.QueueOption, drill.AnswerControls, error) {
	flags := cmd.Flags()
	if flags.Changed("card-limit") {
		n, _ := flags.GetInt("card-limit")
		d.CardLimit = &n
	}
	if flags.Changed("new-card-limit") {
		n, _ := flags.GetInt("new-card-limit")
		d.NewCardLimit = &n
	}
	if flags.Changed("from-deck") {
		d.Deck, _ = flags.GetString("from-deck")
	}
	if flags.Changed("bury-siblings") {
		d.BurySiblings, _ = flags.GetBool("bury-siblings")
	}
	if flags.Changed("shuffle") {
		d.Shuffle, _ = flags.GetBool("shuffle")
	}
	if flags.Changed("answer-controls") {
		d.AnswerControls, _ = flags.GetString("answer-controls")
	}

	controls, err := drill.ParseAnswerControls(d.AnswerControls)
	if err != nil {
		return nil, controls, err
	}

	var opts []drill.QueueOption
	if d.CardLimit != nil {
		if *d.CardLimit < 0 {
			return nil, controls, fmt.Errorf("card limit must not be negative, got %d", *d.CardLimit)
		}
		opts = append(opts, drill.WithCardLimit(*d.CardLimit))
	}
	if d.NewCardLimit != nil {
		if *d.NewCardLimit < 0 {
			return nil, controls, fmt.Errorf("new card limit must not be negative, got %d", *d.NewCardLimit)
		}
		opts = append(opts, drill.WithNewCardLimit(*d.NewCardLimit))
	}
	if d.Deck != "" {
		opts = append(opts, drill.WithDeck(d.Deck))
	}
	opts = append(opts, drill.WithBurySiblings(d.BurySiblings))
	if d.Shuffle {
		opts = append(opts, drill.WithShuffle(drill.WallClockSeed()))
	}
	return opts, controls, nil
}
