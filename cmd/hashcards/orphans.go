package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/hashcards/internal/hash"
	"github.com/kpauljoseph/hashcards/internal/stats"
)

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Manage performance records of cards no longer in the collection",
}

var orphansListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List orphaned card hashes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orphans, err := findOrphans(cmd.Context(), args)
		if err != nil {
			return err
		}
		for _, h := range orphans {
			fmt.Fprintln(cmd.OutOrStdout(), h.Hex())
		}
		return nil
	},
}

var orphansDeleteCmd = &cobra.Command{
	Use:   "delete [dir]",
	Short: "Delete orphaned performance records",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cards, st, err := openCollection(ctx, collectionDir(args))
		if err != nil {
			return err
		}
		defer closeStore(st)

		orphans, err := stats.Orphans(ctx, cards, st)
		if err != nil {
			return err
		}
		for _, h := range orphans {
			if err := st.Delete(ctx, h); err != nil {
				return err
			}
			log.Debug("Deleted %s", h)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d orphaned records.\n", len(orphans))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orphansCmd)
	orphansCmd.AddCommand(orphansListCmd, orphansDeleteCmd)
}

func findOrphans(ctx context.Context, args []string) ([]hash.Hash, error) {
	cards, st, err := openCollection(ctx, collectionDir(args))
	if err != nil {
		return nil, err
	}
	defer closeStore(st)
	return stats.Orphans(ctx, cards, st)
}
