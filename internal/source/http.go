package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// HTTPConfig tunes HTTPOpener.
type HTTPConfig struct {
	Timeout    time.Duration
	MaxRetries uint64
	Backoff    time.Duration // Base of the Fibonacci backoff
	MaxBytes   int64         // Per-document body limit; 0 means 64 MiB
}

// HTTPOpener fetches documents over HTTP(S). Network errors, 429 and 5xx
// responses are retried with Fibonacci backoff.
type HTTPOpener struct {
	client     *http.Client
	maxRetries uint64
	backoff    time.Duration
	maxBytes   int64
	logger     *slog.Logger
}

func NewHTTPOpener(cfg HTTPConfig, logger *slog.Logger) *HTTPOpener {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 64 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPOpener{
		client:     &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
		maxBytes:   cfg.MaxBytes,
		logger:     logger,
	}
}

func (h *HTTPOpener) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	var (
		body    []byte
		attempt int
	)
	b := retry.WithMaxRetries(h.maxRetries, retry.NewFibonacci(h.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		data, err := h.fetch(ctx, id)
		if err == nil {
			body = data
			return nil
		}
		var se *StatusError
		if errors.As(err, &se) && !se.Temporary() {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		h.logger.Warn("fetch failed, retrying", "id", id, "attempt", attempt, "error", err)
		return retry.RetryableError(err)
	})
	if err != nil {
		return nil, &RetrievalError{ID: id, Err: err}
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (h *HTTPOpener) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, &StatusError{Code: http.StatusRequestEntityTooLarge, Body: fmt.Sprintf("document exceeds %d bytes", h.maxBytes)}
	}
	return data, nil
}

// Close releases idle connections.
func (h *HTTPOpener) Close() {
	h.client.CloseIdleConnections()
}
