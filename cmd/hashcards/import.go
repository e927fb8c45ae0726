package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/hashcards/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [dir] file",
	Short: "Load performance records from a JSON export",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[len(args)-1]
		collectionDir(args[:len(args)-1])

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer file.Close()

		records, err := store.ReadJSON(file)
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		if err := st.Import(ctx, records); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records.\n", len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
