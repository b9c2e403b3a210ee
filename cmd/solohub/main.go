// solohub is the command-line frontend for the admin hub: projects,
// resources, users, dashboard, and AI chat sessions over one config file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"solohub/internal/config"
	"solohub/internal/logging"
)

var (
	configPath string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "solohub",
	Short: "Admin hub for a one-person company",
	Long: `solohub manages the operational surface of a one-person company:
a project portfolio, a resource catalog with expiry tracking, a small user
table with role-based permissions, and AI chat sessions backed by Gemini.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		opts := logging.Options{
			Level:       cfg.Logging.Level,
			Categories:  cfg.Logging.Categories,
			Enabled:     cfg.Logging.Enabled,
			Development: cfg.Logging.Development,
		}
		if verbose {
			opts.Level = "debug"
			opts.Enabled = true
			opts.Development = true
		}
		return logging.Initialize(opts)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", cfg.Name, cfg.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "solohub.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to the console")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(resourceCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
