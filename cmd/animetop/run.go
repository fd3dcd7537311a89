package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch and transform in one go",
	Long: `Run performs a complete refresh:
1. Fetches the top anime ranking
2. Stores the raw records
3. Cleans them with the transform profile
4. Writes the cleaned table (CSV and/or SQLite)
5. Sends a Discord summary when discord_webhook_url is configured`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd, runKeys)
		if err != nil {
			return err
		}

		if err := application.Run(cmd.Context()); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}

		return nil
	},
}

var runKeys map[string]string

func init() {
	runKeys = addFetchFlags(runCmd)
	runCmd.Flags().String("profile", "", "transform profile (default data/profile.yaml when present)")
	runCmd.Flags().String("db", "", "directory holding animetop.db (default data/processed)")
	runKeys["profile_path"] = "profile"
	runKeys["db_dir"] = "db"

	rootCmd.AddCommand(runCmd)
}
