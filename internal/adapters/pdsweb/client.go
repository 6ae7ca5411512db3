// Package pdsweb talks to PDS archive servers: directory listings and file
// downloads over plain HTTP(S).
package pdsweb

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultUserAgent = "gammaspec-fetcher/0.1"

// ClientConfig holds the knobs for the archive HTTP client.
type ClientConfig struct {
	// UserAgent is sent with every request.
	UserAgent string

	// ListTimeout bounds a directory-listing request. Default: 30s.
	ListTimeout time.Duration

	// DownloadTimeout bounds a single file download. Default: 60s.
	DownloadTimeout time.Duration

	// MaxRetries is the number of retry attempts for transient failures
	// (network errors, 5xx). Default: 3.
	MaxRetries uint64

	// InitialInterval is the initial retry backoff interval. Default: 500ms.
	InitialInterval time.Duration
}

// DefaultClientConfig returns the timeouts the PDS archives are known to
// tolerate.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		UserAgent:       defaultUserAgent,
		ListTimeout:     30 * time.Second,
		DownloadTimeout: 60 * time.Second,
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
	}
}

// Client is the shared HTTP client for listing and download requests. It
// retries transient failures with exponential backoff; anything that
// survives the retries is reported to the caller, who decides whether the
// batch continues.
type Client struct {
	listClient     *http.Client
	downloadClient *http.Client
	config         ClientConfig
}

// NewClient builds a Client, filling in defaults for zero-valued config.
func NewClient(cfg ClientConfig) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.ListTimeout == 0 {
		cfg.ListTimeout = 30 * time.Second
	}
	if cfg.DownloadTimeout == 0 {
		cfg.DownloadTimeout = 60 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}

	return &Client{
		listClient:     &http.Client{Timeout: cfg.ListTimeout},
		downloadClient: &http.Client{Timeout: cfg.DownloadTimeout},
		config:         cfg,
	}
}

// ServerError represents an HTTP status outside the 2xx range.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// get executes a GET with retry. The caller owns the response body.
func (c *Client) get(ctx context.Context, hc *http.Client, url string) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var resp *http.Response
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.config.UserAgent)

		r, err := hc.Do(req)
		if err != nil {
			return err
		}
		if r.StatusCode >= 500 {
			r.Body.Close()
			return &ServerError{StatusCode: r.StatusCode}
		}
		if r.StatusCode != http.StatusOK {
			r.Body.Close()
			return backoff.Permanent(&ServerError{StatusCode: r.StatusCode})
		}
		resp = r
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}
