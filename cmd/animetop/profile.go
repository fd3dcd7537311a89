package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the transform profile",
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in transform profile for editing",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd, map[string]string{"profile_path": "output"})
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		path, err := application.InitProfile(cmd.Context(), force)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote profile to %s\n", path)
		return nil
	},
}

func init() {
	profileInitCmd.Flags().String("output", "", "profile path (default data/profile.yaml)")
	profileInitCmd.Flags().Bool("force", false, "overwrite an existing profile")

	profileCmd.AddCommand(profileInitCmd)
	rootCmd.AddCommand(profileCmd)
}
