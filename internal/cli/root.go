// Package cli provides the grantsql command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/grantstack-labs/grantsql/internal/cli/config"
	"github.com/grantstack-labs/grantsql/internal/warehouse"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version = "0.1.0"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grantsql",
		Short: "GrantSQL - nonprofit grant analytics warehouse",
		Long: `GrantSQL materializes nonprofit and grant CSV extracts into an embedded
relational store and runs analytical SQL against the resulting tables.

Load the six expected extracts with 'grantsql load', inspect the store with
'tables' and 'describe', and run the built-in analyses with 'analyze' or
arbitrary SQL with 'query'.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			} else {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelWarn,
				}))
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./grantsql.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Path to the source CSV directory")
	rootCmd.PersistentFlags().String("db-path", "", "Path to the store file")
	rootCmd.PersistentFlags().String("store", "", "Store type (sqlite|duckdb)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format (table|json|csv|md)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Register completion for flags with closed vocabularies
	_ = rootCmd.RegisterFlagCompletionFunc("store", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"sqlite", "duckdb"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "csv", "md"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(newLoadCommand())
	rootCmd.AddCommand(newTablesCommand())
	rootCmd.AddCommand(newDescribeCommand())
	rootCmd.AddCommand(newQueryCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newWarehouse creates a warehouse from the loaded configuration.
func newWarehouse() (*warehouse.Warehouse, error) {
	return warehouse.New(warehouse.Config{
		StoreType: cfg.Store,
		DBPath:    cfg.DBPath,
		Logger:    logger,
	})
}
