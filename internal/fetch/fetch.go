// Package fetch retrieves raw text and JSON documents over HTTP.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
)

// ErrNotFound reports a 404 from the remote host.
var ErrNotFound = errors.New("not found")

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 8 << 20

// Fetcher retrieves remote documents. Both methods fail when the response is
// not a 2xx.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
	FetchJSON(ctx context.Context, url string, v any) error
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	status := strings.TrimSpace(e.Status)
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("GET %s: HTTP %s", e.URL, status)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Options configures an HTTPFetcher.
type Options struct {
	// Timeout bounds each attempt. Zero means 30s.
	Timeout time.Duration
	// Retries is the number of extra attempts after a network error or 5xx.
	Retries uint64
	// RetryWait is the pause between attempts.
	RetryWait time.Duration
	// UserAgent is sent with every request.
	UserAgent string
	Logger    *log.Logger
}

// HTTPFetcher is the net/http Fetcher.
type HTTPFetcher struct {
	client    *http.Client
	retries   uint64
	retryWait time.Duration
	userAgent string
	logger    *log.Logger
}

// NewHTTP returns an HTTPFetcher. A nil client gets a fresh one with the
// configured timeout.
func NewHTTP(client *http.Client, opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 250 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HTTPFetcher{
		client:    client,
		retries:   opts.Retries,
		retryWait: opts.RetryWait,
		userAgent: opts.UserAgent,
		logger:    logger,
	}
}

// FetchText returns the body of url as a string.
func (f *HTTPFetcher) FetchText(ctx context.Context, url string) (string, error) {
	b, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FetchJSON decodes the body of url into v.
func (f *HTTPFetcher) FetchJSON(ctx context.Context, url string, v any) error {
	b, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("cannot parse JSON from %s: %w", url, err)
	}
	return nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	op := func() error {
		b, err := f.once(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.retryWait), f.retries),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		f.logger.Debug("retrying fetch", "url", url, "wait", wait, "err", err)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return body, nil
}

// once performs a single attempt. Errors that a retry cannot fix are marked
// permanent.
func (f *HTTPFetcher) once(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("cannot build request for %s: %w", url, err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Debug("fetch", "url", url)
	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		serr := &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, serr
		}
		return nil, backoff.Permanent(serr)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("cannot read response from %s: %w", url, err)
	}
	return b, nil
}
