package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the first rows of the cleaned table",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd, map[string]string{"clean_path": "input", "db_dir": "db"})
		if err != nil {
			return err
		}

		rows, _ := cmd.Flags().GetInt("rows")
		if err := application.Preview(cmd.Context(), cmd.OutOrStdout(), rows); err != nil {
			return fmt.Errorf("preview failed: %w", err)
		}

		return nil
	},
}

func init() {
	previewCmd.Flags().Int("rows", 10, "number of rows to show")
	previewCmd.Flags().String("input", "", "clean CSV path (default data/processed/top_anime_clean.csv)")
	previewCmd.Flags().String("db", "", "directory holding animetop.db (default data/processed)")

	rootCmd.AddCommand(previewCmd)
}
