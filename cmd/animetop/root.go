package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/varoOP/animetop/internal/app"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "animetop",
	Short: "Fetch and clean the top anime ranking",
	Long: `animetop downloads the top anime ranking from the Jikan API, cleans it
into a flat table and writes it as CSV and/or SQLite.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.animetop.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().String("root-path", ".", "the path under which data/ is created")
	rootCmd.PersistentFlags().String("format", "", "output format: 'csv', 'sqlite', or 'both'")
	rootCmd.PersistentFlags().Bool("quiet", false, "only log warnings and errors")
	rootCmd.PersistentFlags().Bool("debug", false, "log debug output")

	// Bind flags to viper
	viper.BindPFlag("root_path", rootCmd.PersistentFlags().Lookup("root-path"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("ANIMETOP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile == "" {
		// fall back to the dotfile in $HOME
		viper.SetConfigName(".animetop")
		if err := viper.ReadInConfig(); err == nil {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// bindFlags binds a command's own flags to config keys. Several commands
// share a key under different flag names, so binding happens for the
// command that actually runs.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// addFetchFlags registers the flags shared by fetch and run
func addFetchFlags(cmd *cobra.Command) map[string]string {
	cmd.Flags().Bool("all", false, "fetch every page until the ranking is exhausted")
	cmd.Flags().Int("limit", 250, "number of titles to fetch")
	cmd.Flags().Int("per-page", 25, "titles per request (at most 25)")
	cmd.Flags().Duration("delay", 0, "pause between requests (default 1s)")
	cmd.Flags().Duration("timeout", 0, "per request timeout (default 10s)")
	cmd.Flags().String("base-url", "", "API base URL")

	return map[string]string{
		"fetch_all": "all",
		"limit":     "limit",
		"per_page":  "per-page",
		"delay":     "delay",
		"timeout":   "timeout",
		"base_url":  "base-url",
	}
}

func newApp(cmd *cobra.Command, keys map[string]string) (*app.App, error) {
	if err := bindFlags(cmd, keys); err != nil {
		return nil, err
	}

	application, err := app.NewApp()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func mergeKeys(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
