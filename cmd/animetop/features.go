package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varoOP/animetop/internal/app"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Build a feature table from the cleaned CSV",
	Long: `Features one-hot encodes the chosen categorical columns of the cleaned table,
removes the dropped columns and writes the result with the target as the last
column to data/processed/top_anime_features.csv.`,
	Example: `  animetop features --target score --one-hot type,source --drop title,genres,demographics --drop-first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd, map[string]string{"clean_path": "input"})
		if err != nil {
			return err
		}

		var opts app.FeatureOptions
		opts.Target, _ = cmd.Flags().GetString("target")
		opts.OneHot, _ = cmd.Flags().GetStringSlice("one-hot")
		opts.Drop, _ = cmd.Flags().GetStringSlice("drop")
		opts.DropFirst, _ = cmd.Flags().GetBool("drop-first")

		x, err := application.Features(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("features failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows x %d columns to %s\n",
			x.Len(), len(x.Columns), application.Paths().FeaturePath)
		return nil
	},
}

func init() {
	featuresCmd.Flags().String("target", "score", "column to predict")
	featuresCmd.Flags().StringSlice("one-hot", []string{"type", "source", "rating"}, "categorical columns to encode")
	featuresCmd.Flags().StringSlice("drop", []string{"mal_id", "title", "genres", "demographics"}, "columns left out of the features")
	featuresCmd.Flags().Bool("drop-first", false, "omit the first category of each encoded column")
	featuresCmd.Flags().String("input", "", "clean CSV path (default data/processed/top_anime_clean.csv)")

	rootCmd.AddCommand(featuresCmd)
}
