// Package cmd implements the CLI commands for wikicorpus using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikicorpus/core/logger"
)

var (
	flagLogLevel string
	flagLogJSON  bool

	log = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "wikicorpus",
	Short: "wikicorpus: build word-sample corpora from wiki articles",
	Long: `wikicorpus fetches random wiki articles, strips their markup, and writes
the remaining words as fixed-length samples, one per line.

Usage:
  wikicorpus scrape <locale> <article_count> <sample_length> [flags]`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := logger.LogLevel(flagLogLevel)
		if !slices.Contains(logger.Levels, level) {
			return fmt.Errorf("invalid --log-level %q (debug, info, warn, error)", flagLogLevel)
		}
		log = logger.NewLogger(&logger.Config{
			Level:      level,
			Output:     cmd.ErrOrStderr(),
			JSON:       flagLogJSON,
			TimeFormat: "15:04:05",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Emit logs as JSON")
}

// Execute runs the root command.
// An interrupt cancels the run's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
