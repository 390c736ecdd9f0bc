package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ccledger",
	Short:         "Community currency ledger",
	Long:          "ccledger runs and administers a single-currency community ledger.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// newLogger installs the JSON logger as the process default.
func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}
