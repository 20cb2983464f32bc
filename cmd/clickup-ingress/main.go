package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agencyops/clickup-ingress/pkg/config"
	"github.com/agencyops/clickup-ingress/pkg/migrate"
)

func newRootCmd() *cobra.Command {
	var (
		dryRun  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "clickup-ingress",
		Short:         "Migrate legacy task-tracker CSV exports into the dashboard's JSON stores",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			runner := migrate.NewRunner(cfg, logger, migrate.Options{DryRun: dryRun})
			report, runErr := runner.Run()

			// The report prints even after a fatal error so the
			// operator sees how far the run got.
			fmt.Fprint(cmd.OutOrStdout(), report.Render())
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "perform every step but write nothing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace per-row resolution decisions")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	return zap.NewProduction()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
