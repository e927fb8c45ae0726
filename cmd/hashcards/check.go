package main

import (
	"fmt"
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/hashcards/internal/stats"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Parse the collection and report errors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := collectionDir(args)
		cards, err := loadCards(cmd.Context(), dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cards in %d decks, no errors.\n", dir, len(cards), len(stats.DeckNames(cards)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
