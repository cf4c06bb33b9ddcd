// Command catalogctl bootstraps the catalog database, issues curator
// tokens and runs the audit log consumer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/painting-catalog/internal/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string
	var logger *zap.Logger

	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Painting catalog administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if !cmd.Flags().Changed("log-level") {
				logLevel = cfg.LogLevel
			}
			l, err := config.NewLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	lg := func() *zap.Logger { return logger }
	cmd.AddCommand(setupCmd(lg), tokenCmd(), auditConsumerCmd(lg))
	return cmd
}
