package feeds

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/sethvargo/go-retry"

	"github.com/fr0stylo/gamecatalog/internal/app/ports"
	"github.com/fr0stylo/gamecatalog/internal/observability"
)

const (
	DefaultAttempts = 3
	DefaultTimeout  = 5 * time.Second
	DefaultBackoff  = 500 * time.Millisecond

	maxBodyBytes = 32 << 20
)

var _ ports.FeedFetcher = (*Fetcher)(nil)

// Config controls retries and timeouts. Zero values fall back to defaults.
type Config struct {
	Attempts int
	// Timeout bounds each attempt separately.
	Timeout time.Duration
	// Backoff is the wait before the second attempt; it doubles afterwards.
	Backoff time.Duration
	Client  *http.Client
}

// FetchError is returned once every attempt for a URL has failed.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx feed response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Fetcher downloads JSON documents with bounded exponential retry.
type Fetcher struct {
	client   *http.Client
	attempts int
	timeout  time.Duration
	backoff  time.Duration
	log      *slog.Logger
	// delay maps each computed backoff onto the duration actually waited.
	delay func(time.Duration) time.Duration
}

// New constructs a Fetcher.
func New(cfg Config, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Transport: observability.InstrumentedTransport(nil)}
	}
	return &Fetcher{
		client:   client,
		attempts: attempts,
		timeout:  timeout,
		backoff:  backoff,
		log:      log,
		delay:    func(d time.Duration) time.Duration { return d },
	}
}

// Fetch GETs url and decodes the JSON body. Transport errors, non-2xx
// statuses and undecodable bodies are retried until attempts run out.
func (f *Fetcher) Fetch(ctx context.Context, url string) (any, error) {
	var (
		doc     any
		attempt int
		lastErr error
	)
	err := retry.Do(ctx, f.newBackoff(), func(ctx context.Context) error {
		attempt++
		value, err := f.fetchOnce(ctx, url)
		if err != nil {
			lastErr = err
			f.log.WarnContext(ctx, "Feed fetch attempt failed",
				"url", url,
				"attempt", attempt,
				"max_attempts", f.attempts,
				"error", err,
			)
			return retry.RetryableError(err)
		}
		doc = value
		return nil
	})
	if err != nil {
		if lastErr == nil || ctx.Err() != nil {
			lastErr = err
		}
		return nil, &FetchError{URL: url, Attempts: attempt, Err: lastErr}
	}
	f.log.DebugContext(ctx, "Feed fetched", "url", url, "attempts", attempt)
	return doc, nil
}

func (f *Fetcher) newBackoff() retry.Backoff {
	next := retry.WithMaxRetries(uint64(f.attempts-1), retry.NewExponential(f.backoff))
	return retry.BackoffFunc(func() (time.Duration, bool) {
		wait, stop := next.Next()
		if stop {
			return 0, true
		}
		return f.delay(wait), false
	})
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := decodedBody(resp)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return doc, nil
}

func decodedBody(resp *http.Response) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		return brotli.NewReader(resp.Body), nil
	case "gzip":
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open gzip body: %w", err)
		}
		return reader, nil
	case "", "identity":
		return resp.Body, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
}
