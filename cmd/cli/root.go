package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newRootCmd builds the base command with every subcommand attached
func newRootCmd() *cobra.Command {
	var logLevel string // Log verbosity level

	rootCmd := &cobra.Command{
		Use:          "allocation",
		Short:        "Tabu search for the professor allocation problem",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(newSolveCmd(), newBenchCmd())
	return rootCmd
}
