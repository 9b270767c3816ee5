// Package fetch implements the Fetcher interface.
// APIFetcher pulls random articles from a live MediaWiki API in batches;
// DumpSource reads them from a local XML export.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"

	"github.com/gaurav-prasanna/wikicorpus/core"
	"github.com/gaurav-prasanna/wikicorpus/core/logger"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultBackoff   = 500 * time.Millisecond
	maxBackoff       = 10 * time.Second
	defaultUserAgent = "wikicorpus/1.0 (https://github.com/gaurav-prasanna/wikicorpus)"

	// DefaultEndpoint is formatted with the locale.
	DefaultEndpoint = "https://%s.wikipedia.org/w/api.php"
)

// ErrNoProgress is returned when repeated batches yield no new articles.
var ErrNoProgress = errors.New("api returned no new articles")

// APIError is an error object reported by the MediaWiki API itself.
type APIError struct {
	Code string
	Info string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mediawiki api error %s: %s", e.Code, e.Info)
}

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// APIOptions configures an APIFetcher. Zero values fall back to defaults.
type APIOptions struct {
	Endpoint   string // format string with one %s for the locale
	BatchSize  int
	MaxRetries int
	Timeout    time.Duration
	Backoff    time.Duration // base delay of the exponential backoff
	Logger     logger.Logger
}

// APIFetcher fetches random articles from the MediaWiki action API.
type APIFetcher struct {
	client     *resty.Client
	endpoint   string
	batchSize  int
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

// NewAPIFetcher creates an APIFetcher.
func NewAPIFetcher(opts APIOptions) *APIFetcher {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.BatchSize <= 0 || opts.BatchSize > core.MaxBatchSize {
		opts.BatchSize = core.MaxBatchSize
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Accept", "application/json")

	return &APIFetcher{
		client:     client,
		endpoint:   opts.Endpoint,
		batchSize:  opts.BatchSize,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		log:        opts.Logger,
	}
}

// FetchRandom returns exactly count random main-namespace articles. Batches
// are requested sequentially; any failed batch fails the whole call.
func (f *APIFetcher) FetchRandom(ctx context.Context, locale string, count int) ([]core.Article, error) {
	if count <= 0 {
		return nil, nil
	}
	endpoint := fmt.Sprintf(f.endpoint, locale)
	b := NewBatcher(count, f.batchSize)

	stalls := 0
	for !b.Done() {
		n := b.Next()
		articles, err := f.fetchBatch(ctx, endpoint, n)
		if err != nil {
			return nil, fmt.Errorf("fetching batch at %d/%d: %w", b.Len(), count, err)
		}
		added := b.Add(articles...)
		f.log.Debug("Fetched batch", "requested", n, "received", len(articles), "added", added, "total", b.Len())

		if added == 0 {
			stalls++
			if stalls >= 2 {
				return nil, fmt.Errorf("%w after %d of %d", ErrNoProgress, b.Len(), count)
			}
			continue
		}
		stalls = 0
	}
	return b.All(), nil
}

// fetchBatch performs one API call, retrying transient failures.
func (f *APIFetcher) fetchBatch(ctx context.Context, endpoint string, n int) ([]core.Article, error) {
	backoff := retry.NewExponential(f.backoff)
	backoff = retry.WithCappedDuration(maxBackoff, backoff)
	backoff = retry.WithJitter(f.backoff/10+time.Millisecond, backoff)
	backoff = retry.WithMaxRetries(uint64(f.maxRetries), backoff) // #nosec G115 -- non-negative

	var articles []core.Article
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, err := f.get(ctx, endpoint, n)
		if err != nil {
			if ctx.Err() == nil && isRetryable(err) {
				f.log.Warn("Retrying batch", "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		articles, err = parsePages(body)
		return err
	})
	return articles, err
}

func (f *APIFetcher) get(ctx context.Context, endpoint string, n int) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":        "query",
			"format":        "json",
			"formatversion": "2",
			"generator":     "random",
			"grnnamespace":  "0",
			"grnlimit":      strconv.Itoa(n),
			"prop":          "revisions",
			"rvprop":        "content",
			"rvslots":       "main",
		}).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: truncate(resp.String(), 200)}
	}
	return resp.Body(), nil
}

// parsePages extracts articles from a formatversion=2 query response.
// Pages without revision content are returned with empty text.
func parsePages(body []byte) ([]core.Article, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON response")
	}
	root := gjson.ParseBytes(body)
	if apiErr := root.Get("error"); apiErr.Exists() {
		return nil, &APIError{Code: apiErr.Get("code").String(), Info: apiErr.Get("info").String()}
	}

	pages := root.Get("query.pages")
	if !pages.Exists() {
		return nil, nil
	}

	var articles []core.Article
	pages.ForEach(func(_, page gjson.Result) bool {
		text := page.Get("revisions.0.slots.main.content")
		if !text.Exists() {
			text = page.Get(`revisions.0.slots.main.\*`)
		}
		if !text.Exists() {
			text = page.Get(`revisions.0.\*`)
		}
		articles = append(articles, core.Article{
			ID:    page.Get("pageid").Int(),
			Title: page.Get("title").String(),
			Text:  text.String(),
		})
		return true
	})
	return articles, nil
}

// isRetryable reports whether err is a 429, a 5xx, or a network-level
// failure such as a refused dial, a reset, a timeout or a truncated
// response. Malformed URLs and TLS verification failures are permanent.
func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	// *url.Error satisfies net.Error itself, so classify what it wraps.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
