package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Clean previously fetched records",
	Long: `Transform loads the raw JSON written by fetch, runs the cleaning pipeline
and writes the cleaned table to the configured outputs.

The pipeline is described by a profile (see "animetop profile init"); the
built-in profile is used when no profile file exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd, transformKeys)
		if err != nil {
			return err
		}

		report, err := application.Transform(cmd.Context())
		if err != nil {
			return fmt.Errorf("transform failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "kept %d of %d rows\n", report.RowsOut, report.RowsIn)
		return nil
	},
}

var transformKeys = map[string]string{
	"raw_path":     "input",
	"clean_path":   "output",
	"profile_path": "profile",
	"db_dir":       "db",
}

func init() {
	transformCmd.Flags().String("input", "", "raw JSON path (default data/raw/top_anime.json)")
	transformCmd.Flags().String("output", "", "clean CSV path (default data/processed/top_anime_clean.csv)")
	transformCmd.Flags().String("profile", "", "transform profile (default data/profile.yaml when present)")
	transformCmd.Flags().String("db", "", "directory holding animetop.db (default data/processed)")

	rootCmd.AddCommand(transformCmd)
}
