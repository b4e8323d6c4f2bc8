package routing

import (
	"context"
	"eld-trip-service/internal/platform/logging"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"golang.org/x/time/rate"
)

// ClientOptions tunes the shared upstream HTTP client.
type ClientOptions struct {
	UserAgent string
	Timeout   time.Duration
	// Total attempts per request, including the first.
	Attempts   uint
	RetryDelay time.Duration
	// Zero disables client-side throttling.
	RequestsPerSecond float64
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		UserAgent:  "tripcop-eld-planner",
		Timeout:    15 * time.Second,
		Attempts:   4,
		RetryDelay: 200 * time.Millisecond,
	}
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// apiClient issues GET requests for JSON APIs with throttling and retry.
// It is safe for concurrent use.
type apiClient struct {
	session   *http.Client
	userAgent string
	attempts  uint
	delay     time.Duration
	limiter   *rate.Limiter
}

func newAPIClient(opts ClientOptions) *apiClient {
	def := DefaultClientOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.Attempts == 0 {
		opts.Attempts = def.Attempts
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = def.RetryDelay
	}

	c := &apiClient{
		session:   &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		attempts:  opts.Attempts,
		delay:     opts.RetryDelay,
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c
}

// retryable reports whether a status is worth another attempt.
func retryable(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// getJSON fetches endpoint?query and decodes the body into out.
// Network errors, 429 and 5xx are retried with exponential backoff and
// jitter; other 4xx responses fail immediately.
func (c *apiClient) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	logger := logging.FromContext(ctx)

	var body []byte
	err := retry.Do(
		func() error {
			if c.limiter != nil {
				if err := c.limiter.Wait(ctx); err != nil {
					return retry.Unrecoverable(fmt.Errorf("wait for rate limiter: %w", err))
				}
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}
			req.Header.Set("User-Agent", c.userAgent)
			req.Header.Set("Accept", "application/json")

			resp, err := c.session.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}

			if resp.StatusCode >= 400 {
				se := &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
				if retryable(resp.StatusCode) {
					return se
				}
				return retry.Unrecoverable(se)
			}

			body = b
			return nil
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.OnRetry(func(n uint, err error) {
			logger.Info("retrying upstream request",
				"host", hostOf(endpoint),
				"attempt", n+1,
				"error", err,
			)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("get %s: %w", hostOf(endpoint), err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", hostOf(endpoint), err)
	}
	return nil
}

func hostOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

// statusCode extracts the upstream HTTP status from err, or 0.
func statusCode(err error) int {
	var se *httpStatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cacheKey is normalize plus case folding.
func cacheKey(s string) string {
	return strings.ToLower(normalize(s))
}
