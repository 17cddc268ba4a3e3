package mealapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Client talks to the meal-planning backend. One Client is shared by every
// screen; its base endpoint is fixed at construction.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger
	breaker   *gobreaker.TwoStepCircuitBreaker
	retries   uint
	backoff   func() backoff.BackOff
}

const (
	defaultBaseURL   = "http://localhost:8080"
	requestTimeout   = 10 * time.Second
	defaultRetries   = 3
	breakerFailures  = 5
	breakerTimeout   = 15 * time.Second
	breakerHalfOpen  = 1
	maxMessageLength = 200
)

// Version is reported in the User-Agent header.
var Version = "0.1"

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRetries sets how many times an idempotent request is attempted in total.
func WithRetries(n uint) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithBackOff sets the delay policy between retries.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		if newBackOff != nil {
			c.backoff = newBackOff
		}
	}
}

// WithBreaker replaces the circuit breaker settings. Name and IsSuccessful are
// filled in when empty.
func WithBreaker(s gobreaker.Settings) Option {
	return func(c *Client) {
		c.breaker = newBreaker(s)
	}
}

// NewClient builds a Client for baseURL. A missing scheme defaults to http and
// any path, query or fragment is dropped.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: "mealplan/" + Version,
		log:       discard,
		retries:   defaultRetries,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
		breaker: newBreaker(gobreaker.Settings{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the fixed base endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func newBreaker(s gobreaker.Settings) *gobreaker.TwoStepCircuitBreaker {
	if s.Name == "" {
		s.Name = "mealapi"
	}
	if s.MaxRequests == 0 {
		s.MaxRequests = breakerHalfOpen
	}
	if s.Timeout == 0 {
		s.Timeout = breakerTimeout
	}
	if s.ReadyToTrip == nil {
		s.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		}
	}
	return gobreaker.NewTwoStepCircuitBreaker(s)
}

// Request performs method on path relative to the base endpoint. A non-nil
// body is sent as JSON; a non-nil dest receives the decoded JSON response.
// Responses with status >= 400 are returned as *APIError.
func (c *Client) Request(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	raw, err := c.requestRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// requestRaw runs one logical request through the breaker and, for GET,
// through the retry policy. It returns the response body.
func (c *Client) requestRaw(ctx context.Context, method, path string, body any) ([]byte, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	attempts := uint(1)
	if method == http.MethodGet {
		attempts = c.retries
	}

	attempt := 0
	operation := func() ([]byte, error) {
		attempt++
		out, err := c.attempt(ctx, method, rel, payload, attempt)
		if err == nil {
			return out, nil
		}
		if !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.backoff()),
		backoff.WithMaxTries(attempts),
	)
}

func (c *Client) attempt(ctx context.Context, method string, rel *url.URL, payload []byte, attempt int) ([]byte, error) {
	done, err := c.breaker.Allow()
	if err != nil {
		return nil, ErrBackendUnavailable
	}

	requestID := uuid.NewString()
	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       rel.String(),
		"request_id": requestID,
		"attempt":    attempt,
	})

	out, err := c.send(ctx, method, rel, payload, requestID)
	done(breakerSuccess(err))
	if err != nil {
		log.WithError(err).Warn("request failed")
		return nil, err
	}
	log.Debug("request ok")
	return out, nil
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, payload []byte, requestID string) ([]byte, error) {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{
			Method:     method,
			Path:       rel.Path,
			StatusCode: resp.StatusCode,
			Message:    trimMessage(data),
			RequestID:  requestID,
		}
	}
	return data, nil
}

// retryable reports transport failures and 5xx responses.
func retryable(err error) bool {
	if errors.Is(err, ErrBackendUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}

// breakerSuccess counts client errors as healthy backend responses.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return !apiErr.Temporary()
	}
	return errors.Is(err, context.Canceled)
}

func trimMessage(data []byte) string {
	msg := strings.TrimSpace(string(data))
	var wrapped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &wrapped) == nil {
		switch {
		case wrapped.Message != "":
			msg = wrapped.Message
		case wrapped.Error != "":
			msg = wrapped.Error
		}
	}
	msg = strings.Join(strings.Fields(msg), " ")
	if len(msg) > maxMessageLength {
		msg = msg[:maxMessageLength] + "..."
	}
	return msg
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
