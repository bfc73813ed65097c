// Package notify delivers final task results to caller-supplied callback
// addresses with bounded retries. Delivery is at-most-N, never exactly
// once: after the attempt budget is exhausted the failure is logged and
// swallowed, and the round's published side effects stand regardless.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// Payload is the result document POSTed to the callback address. The
// nonce is echoed from the submission; the publish fields come verbatim
// from the PublishResult.
type Payload struct {
	Email     string `json:"email"`
	Task      string `json:"task"`
	Round     int    `json:"round"`
	Nonce     string `json:"nonce"`
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
}

// Notifier delivers a result payload to a callback address.
type Notifier interface {
	// Notify POSTs the payload to the callback URL. It returns an error
	// only after all attempts are exhausted.
	Notify(ctx context.Context, payload Payload, callbackURL string) error
}

// Config bounds the HTTP notifier's retry behavior.
type Config struct {
	// Attempts is the total number of delivery attempts, including the
	// first one.
	Attempts int

	// Delay is the fixed pause between attempts.
	Delay time.Duration

	// Timeout bounds each individual attempt.
	Timeout time.Duration
}

// DefaultConfig returns the retry bounds used when none are configured:
// 3 attempts, 1s apart, 10s per attempt.
func DefaultConfig() Config {
	return Config{
		Attempts: 3,
		Delay:    time.Second,
		Timeout:  10 * time.Second,
	}
}

// HTTPNotifier implements Notifier over plain HTTP POST.
type HTTPNotifier struct {
	client *http.Client
	config Config
}

// NewHTTPNotifier creates an HTTPNotifier with the given retry bounds.
// Zero-valued fields fall back to the defaults.
func NewHTTPNotifier(cfg Config) *HTTPNotifier {
	defaults := DefaultConfig()
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaults.Attempts
	}
	if cfg.Delay <= 0 {
		cfg.Delay = defaults.Delay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}

	return &HTTPNotifier{
		client: &http.Client{Timeout: cfg.Timeout},
		config: cfg,
	}
}

// Notify POSTs the payload to the callback URL with fixed-delay retries.
// A non-2xx response or transport failure counts as a failed attempt.
func (n *HTTPNotifier) Notify(ctx context.Context, payload Payload, callbackURL string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	backoff := retry.WithMaxRetries(uint64(n.config.Attempts-1), retry.NewConstant(n.config.Delay))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := n.attempt(ctx, body, callbackURL); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("notification failed after %d attempts: %w", n.config.Attempts, err)
	}

	return nil
}

// attempt performs one POST and classifies the outcome.
func (n *HTTPNotifier) attempt(ctx context.Context, body []byte, callbackURL string) error {
	attemptCtx, cancel := context.WithTimeout(ctx, n.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, callbackURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("callback returned status %d", resp.StatusCode)
	}

	return nil
}
