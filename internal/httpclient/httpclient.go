// Package httpclient provides the shared pooled HTTP client used for all
// outbound requests in a run.
package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FetchError is returned when a GET does not produce a 200 response body:
// transport failures, timeouts, and non-200 final statuses.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch data from %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// Config is the fixed client configuration.
type Config struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxRetries     int
	BackoffFactor  float64
	MaxConns       int
}

// Client wraps a pooled http.Client. All requests of one run carry the same
// X-Request-ID so the geocode and forecast calls can be correlated in logs.
type Client struct {
	http        *http.Client
	cfg         Config
	requestID   string
	releaseOnce sync.Once
}

// New builds a Client with pooled connections, the configured connect/read
// timeouts and mandatory certificate validation.
func New(cfg Config) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConns:          cfg.MaxConns,
		MaxIdleConnsPerHost:   cfg.MaxConns,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	return &Client{
		http:      &http.Client{Transport: transport},
		cfg:       cfg,
		requestID: uuid.NewString(),
	}
}

var (
	shared     *Client
	sharedOnce sync.Once
)

// Shared returns the process-wide client, constructing it on first use.
// cfg only takes effect on that first call.
func Shared(cfg Config) *Client {
	sharedOnce.Do(func() {
		shared = New(cfg)
	})
	return shared
}

// Release closes the client's pooled connections. Safe to call more than
// once; only the first call does anything.
func (c *Client) Release() {
	c.releaseOnce.Do(func() {
		c.http.CloseIdleConnections()
	})
}

// Fetch issues a GET for url and returns the response body. 500, 502, 503
// and 504 responses are retried up to MaxRetries times with exponential
// backoff; everything else fails immediately with a *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	slog.Debug("fetching data", "url", url, "request_id", c.requestID)

	backoff := time.Duration(c.cfg.BackoffFactor * float64(time.Second))

	var lastErr error
	for attempt := 0; ; attempt++ {
		body, retryable, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable || attempt >= c.cfg.MaxRetries {
			return "", lastErr
		}

		slog.Debug("retrying request", "url", url, "attempt", attempt+1, "backoff", backoff)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", &FetchError{URL: url, Cause: ctx.Err()}
		case <-timer.C:
		}
		backoff *= 2
	}
}

// get performs a single GET attempt. The bool reports whether the failure
// is retryable (network error or retryable status).
func (c *Client) get(ctx context.Context, url string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, &FetchError{URL: url, Cause: err}
	}
	req.Header.Set("X-Request-ID", c.requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		retryable := errors.As(err, &netErr)
		return "", retryable, &FetchError{URL: url, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, &FetchError{URL: url, Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", retryableStatus(resp.StatusCode), &FetchError{
			URL:   url,
			Cause: fmt.Errorf("unexpected status: %d", resp.StatusCode),
		}
	}

	return string(body), false, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
