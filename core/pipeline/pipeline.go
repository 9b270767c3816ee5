// Package pipeline runs one corpus build:
// fetch → strip → chunk → render → write.
//
// Articles are fetched up front, then stripped and chunked in order through
// a single token buffer, so sample boundaries are deterministic for a given
// article sequence.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/gaurav-prasanna/wikicorpus/core"
	"github.com/gaurav-prasanna/wikicorpus/core/chunk"
	"github.com/gaurav-prasanna/wikicorpus/core/logger"
	"github.com/gaurav-prasanna/wikicorpus/core/strip"
)

// progressEvery controls how often article progress is logged.
const progressEvery = 100

// Pipeline wires the stages of one run together.
type Pipeline struct {
	cfg      core.Config
	fetcher  core.Fetcher
	stripper core.Stripper
	renderer core.Renderer
	sink     core.SampleSink
	log      logger.Logger
}

// New creates a Pipeline. A nil logger discards log output.
func New(
	cfg core.Config,
	fetcher core.Fetcher,
	stripper core.Stripper,
	renderer core.Renderer,
	sink core.SampleSink,
	log logger.Logger,
) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher,
		stripper: stripper,
		renderer: renderer,
		sink:     sink,
		log:      log,
	}
}

// Run executes the pipeline. Fetch and write failures abort the run;
// malformed markup only truncates the affected article.
func (p *Pipeline) Run(ctx context.Context) (core.RunStats, error) {
	var stats core.RunStats

	p.log.Info("Fetching articles",
		"locale", p.cfg.Locale, "count", humanize.Comma(int64(p.cfg.ArticleCount)), "source", p.cfg.Source)
	articles, err := p.fetcher.FetchRandom(ctx, p.cfg.Locale, p.cfg.ArticleCount)
	if err != nil {
		return stats, fmt.Errorf("fetch: %w", err)
	}
	p.log.Info("Fetched articles", "count", humanize.Comma(int64(len(articles))))

	chunker := chunk.New(p.cfg.SampleLength)
	for i, article := range articles {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		cleaned, err := p.stripper.Strip(article.Text)
		if err != nil {
			var merr *strip.MalformedError
			if !errors.As(err, &merr) {
				return stats, fmt.Errorf("strip %q: %w", article.Title, err)
			}
			stats.Malformed++
			p.log.Warn("Unterminated markup; rest of article skipped",
				"title", article.Title, "rule", merr.Rule, "offset", merr.Offset,
				"skipped_bytes", len(article.Text)-merr.Offset)
		}

		samples, kept := chunker.Ingest(cleaned)
		stats.Articles++
		stats.Tokens += kept

		for _, sample := range samples {
			if err := p.write(sample); err != nil {
				return stats, err
			}
			stats.Samples++
		}

		if (i+1)%progressEvery == 0 {
			p.log.Info("Progress",
				"articles", humanize.Comma(int64(i+1)), "samples", humanize.Comma(int64(stats.Samples)))
		}
	}

	stats.Dropped = len(chunker.Discard())
	p.log.Info("Run complete",
		"articles", humanize.Comma(int64(stats.Articles)),
		"malformed", stats.Malformed,
		"tokens", humanize.Comma(int64(stats.Tokens)),
		"samples", humanize.Comma(int64(stats.Samples)),
		"dropped_tokens", stats.Dropped)
	return stats, nil
}

func (p *Pipeline) write(sample core.Sample) error {
	data, err := p.renderer.Render(sample)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := p.sink.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
