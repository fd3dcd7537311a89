package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the top anime ranking",
	Long: `Fetch requests the ranking page by page and stores the raw records as JSON.

By default ceil(limit/per-page) pages are requested. With --all pages are
requested until one comes back empty. Either way the fetch stops early on an
empty page or a failed request and keeps what it already has.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd, fetchKeys)
		if err != nil {
			return err
		}

		summary, err := application.Fetch(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "fetched %d records from %d pages (%s) into %s\n",
			len(summary.Records), summary.Pages, summary.Stop, application.Paths().RawPath)
		return nil
	},
}

var fetchKeys map[string]string

func init() {
	fetchKeys = addFetchFlags(fetchCmd)
	fetchCmd.Flags().String("output", "", "raw JSON path (default data/raw/top_anime.json)")
	fetchKeys["raw_path"] = "output"

	rootCmd.AddCommand(fetchCmd)
}
