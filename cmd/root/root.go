// Package root contains the root command for the application
package root

import (
	"github.com/Radioaktywny/budget-planing-sub001/internal/categorizer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/committer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/config"
	"github.com/Radioaktywny/budget-planing-sub001/internal/importer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/refdata"
	"github.com/Radioaktywny/budget-planing-sub001/internal/staging"
	"github.com/Radioaktywny/budget-planing-sub001/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Format string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-staging",
		Short: "Review and commit imported transactions into a personal-finance ledger.",
		Long: `budget-staging validates JSON/YAML transaction import documents,
stages them for review, reconciles splits, resolves account/category/tag
names against the reference data, and commits the approved subset.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to budget-staging!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger for all packages
			importer.SetLogger(Log)
			refdata.SetLogger(Log)
			staging.SetLogger(Log)
			categorizer.SetLogger(Log)
			committer.SetLogger(Log)
			store.SetLogger(Log)
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input import document (JSON or YAML)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Input format: json or yaml (default: detect)")
}
