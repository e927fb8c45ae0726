package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/hashcards/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Write the performance database as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		collectionDir(args)
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(st)

		records, err := st.Export(ctx)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" || output == "-" {
			return store.WriteJSON(cmd.OutOrStdout(), records)
		}

		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		if err := store.WriteJSON(file, records); err != nil {
			return err
		}
		log.Info("Exported %d records to %s", len(records), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "output file, - for standard output")
}
