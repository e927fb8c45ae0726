package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats [dir]",
	Short: "Show collection statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "text" && format != "json" {
			return fmt.Errorf("unknown format %q (want text or json)", format)
		}

		ctx := cmd.Context()
		cards, st, err := openCollection(ctx, collectionDir(args))
		if err != nil {
			return err
		}
		defer closeStore(st)

		s, err := stats.Compute(ctx, cards, st, datetime.Today())
		if err != nil {
			return err
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}
		return writeStats(cmd.OutOrStdout(), s)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("format", "text", "output format: text or json")
}

func writeStats(out io.Writer, s stats.Stats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Date:\t%s\n", s.Date)
	fmt.Fprintf(w, "Cards:\t%d\n", s.CollectionSize)
	fmt.Fprintf(w, "New:\t%d\n", s.NewCards)
	fmt.Fprintf(w, "Due today:\t%d\n", s.DueToday)
	fmt.Fprintf(w, "Reviewed:\t%d\n", s.ReviewedCards)
	fmt.Fprintf(w, "Total reviews:\t%d\n", s.TotalReviews)
	fmt.Fprintf(w, "Avg stability:\t%.2f days\n", s.AverageStability)
	fmt.Fprintf(w, "Avg difficulty:\t%.2f\n", s.AverageDifficulty)
	if err := w.Flush(); err != nil {
		return err
	}
	if len(s.Decks) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Deck", "Cards", "New", "Due"})
	for _, d := range s.Decks {
		table.Append([]string{d.Name, strconv.Itoa(d.Cards), strconv.Itoa(d.New), strconv.Itoa(d.Due)})
	}
	table.Render()
	return nil
}
