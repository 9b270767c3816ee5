// Package cmd: scrape command.
// This is the main command that orchestrates the pipeline:
// fetch → strip → chunk → render → write.
//
// It turns arguments and flags into a validated core.Config before any
// component runs.
package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikicorpus/core"
	"github.com/gaurav-prasanna/wikicorpus/core/fetch"
	"github.com/gaurav-prasanna/wikicorpus/core/logger"
	"github.com/gaurav-prasanna/wikicorpus/core/output"
	"github.com/gaurav-prasanna/wikicorpus/core/pipeline"
	"github.com/gaurav-prasanna/wikicorpus/core/render"
	"github.com/gaurav-prasanna/wikicorpus/core/strip"
)

// Flag variables.
var (
	flagOut        string
	flagSource     string
	flagDump       string
	flagFormat     string
	flagEncoding   string
	flagBatchSize  int
	flagMaxRetries int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <locale> <article_count> <sample_length>",
	Short: "Fetch random articles and write fixed-length word samples",
	Long: `Scrape fetches article_count random articles from the <locale> Wikipedia,
strips wiki markup, and writes every full group of sample_length words as one
line of the output file. A trailing partial group is not written.

Examples:
  wikicorpus scrape en 100 8
  wikicorpus scrape de 500 12 --out ./corpora/de.txt
  wikicorpus scrape en 1000 5 --source dump --dump enwiki-latest-pages-articles1.xml.bz2
  wikicorpus scrape fr 200 10 --format jsonl --encoding utf-16le`,
	Args: cobra.ExactArgs(3),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	defaults := core.DefaultConfig()
	scrapeCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default: <locale>_corpus.<ext>)")
	scrapeCmd.Flags().StringVar(&flagSource, "source", defaults.Source, "Article source: api or dump")
	scrapeCmd.Flags().StringVar(&flagDump, "dump", "", "Path to a MediaWiki XML dump (.xml or .xml.bz2), used with --source dump")
	scrapeCmd.Flags().StringVar(&flagFormat, "format", defaults.Format, "Output format: text or jsonl")
	scrapeCmd.Flags().StringVar(&flagEncoding, "encoding", defaults.Encoding, "Output encoding: utf-8, utf-8-bom, utf-16le, utf-16be")
	scrapeCmd.Flags().IntVar(&flagBatchSize, "batch-size", defaults.BatchSize, "Articles per API request (max 50)")
	scrapeCmd.Flags().IntVar(&flagMaxRetries, "retries", defaults.MaxRetries, "Retries per failed API request")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(args)
	if err != nil {
		return err
	}

	renderer, err := render.ForFormat(cfg.Format)
	if err != nil {
		return err
	}
	if cfg.OutPath == "" {
		cfg.OutPath = cfg.Locale + "_corpus" + renderer.Extension()
	}

	fs := afero.NewOsFs()
	stats, path, err := scrape(cmd.Context(), cfg, selectFetcher(cfg, fs, log), renderer, fs, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s (%d samples from %d articles)\n", path, stats.Samples, stats.Articles)
	return nil
}

// scrape opens the output and runs the pipeline into it. The file at
// cfg.OutPath is only replaced when the run succeeds.
func scrape(
	ctx context.Context,
	cfg core.Config,
	fetcher core.Fetcher,
	renderer core.Renderer,
	fs afero.Fs,
	log logger.Logger,
) (core.RunStats, string, error) {
	sw, err := output.New(fs).Create(cfg.OutPath, cfg.Encoding)
	if err != nil {
		return core.RunStats{}, "", fmt.Errorf("initializing output writer: %w", err)
	}

	stats, err := pipeline.New(cfg, fetcher, strip.Default(), renderer, sw, log).Run(ctx)
	if err != nil {
		if abortErr := sw.Abort(); abortErr != nil {
			log.Warn("Could not remove partial output", "error", abortErr)
		}
		return stats, "", err
	}
	if err := sw.Close(); err != nil {
		return stats, "", fmt.Errorf("write: %w", err)
	}
	return stats, sw.Path(), nil
}

// buildConfig parses positional arguments and flags into a validated Config.
// OutPath may be left empty for the caller to default.
func buildConfig(args []string) (core.Config, error) {
	if len(args) != 3 {
		return core.Config{}, fmt.Errorf("expected <locale> <article_count> <sample_length>, got %d arguments", len(args))
	}

	count, err := parsePositive("article_count", args[1])
	if err != nil {
		return core.Config{}, err
	}
	length, err := parsePositive("sample_length", args[2])
	if err != nil {
		return core.Config{}, err
	}

	cfg := core.Config{
		Locale:       args[0],
		ArticleCount: count,
		SampleLength: length,
		OutPath:      flagOut,
		Source:       flagSource,
		DumpPath:     flagDump,
		Format:       flagFormat,
		Encoding:     flagEncoding,
		BatchSize:    flagBatchSize,
		MaxRetries:   flagMaxRetries,
	}

	// Validate with a placeholder path; the real default depends on the renderer.
	check := cfg
	if check.OutPath == "" {
		check.OutPath = "-"
	}
	if err := check.Validate(); err != nil {
		return core.Config{}, err
	}
	return cfg, nil
}

func parsePositive(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return n, nil
}

// selectFetcher creates the article source named by the config.
func selectFetcher(cfg core.Config, fs afero.Fs, log logger.Logger) core.Fetcher {
	if cfg.Source == core.SourceDump {
		return fetch.NewDumpSource(fs, cfg.DumpPath)
	}
	return fetch.NewAPIFetcher(fetch.APIOptions{
		BatchSize:  cfg.BatchSize,
		MaxRetries: cfg.MaxRetries,
		Logger:     log.With("component", "fetch"),
	})
}
