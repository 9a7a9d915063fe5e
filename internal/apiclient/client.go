package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"warranty/internal/observability"
	"warranty/internal/util"
)

const DefaultBaseURL = "http://167.86.94.200:3000/api/v1"

// Envelope is the uniform wrapper the backend puts around every payload.
type Envelope[T any] struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       T      `json:"data"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Timestamp  string `json:"timestamp"`
}

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token(ctx context.Context) string
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
	Breaker *gobreaker.CircuitBreaker
	Limiter *rate.Limiter
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource

	// Zero RPS disables the limiter, zero BreakerFailures disables the breaker.
	RPS             float64
	Burst           int
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Tokens:  opts.Tokens,
	}
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	if opts.BreakerFailures > 0 {
		c.Breaker = NewBreaker("warranty-api", opts.BreakerFailures, opts.BreakerTimeout)
	}
	return c
}

// NewBreaker trips after `failures` consecutive transport errors or 5xx answers.
// 4xx answers and caller cancellations do not count against the upstream.
func NewBreaker(name string, failures uint32, timeout time.Duration) *gobreaker.CircuitBreaker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= failures },
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var ae *Error
			if errors.As(err, &ae) {
				return ae.Status != 0 && ae.Status < 500
			}
			return false
		},
	})
}

// Request performs one call and decodes the (unwrapped) payload into T.
func Request[T any](ctx context.Context, c *Client, method, endpoint string, body any) (T, error) {
	var out T
	if err := c.Do(ctx, method, endpoint, body, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, in, out any) error {
	return c.Do(ctx, http.MethodPost, endpoint, in, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, in, out any) error {
	return c.Do(ctx, http.MethodPut, endpoint, in, out)
}

// Do sends in as JSON (when non-nil) and decodes the response into out (when non-nil).
// Every failure is an *Error.
func (c *Client) Do(ctx context.Context, method, endpoint string, in, out any) error {
	resource := resourceOf(endpoint)
	start := time.Now()

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			observability.UpstreamCalls.WithLabelValues(resource, "rate_limited_local", "0").Inc()
			return transportError("rate limiter", err)
		}
	}

	var status int
	call := func() (any, error) {
		var err error
		status, err = c.roundTrip(ctx, method, endpoint, in, out)
		return nil, err
	}

	var err error
	if c.Breaker == nil {
		_, err = call()
	} else {
		_, err = c.Breaker.Execute(call)
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		observability.UpstreamCalls.WithLabelValues(resource, "cb_open", "0").Inc()
		return transportError("upstream unavailable", err)
	}

	observability.UpstreamLatency.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.UpstreamCalls.WithLabelValues(resource, "error", strconv.Itoa(status)).Inc()
		return err
	}
	observability.UpstreamCalls.WithLabelValues(resource, "ok", strconv.Itoa(status)).Inc()
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, transportError("encode request", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+endpoint, body)
	if err != nil {
		return 0, transportError("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		reqID = util.NewRequestID()
	}
	req.Header.Set("X-Request-ID", reqID)

	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return 0, transportError("network error", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, transportError("read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, statusError(resp.StatusCode, raw)
	}
	return resp.StatusCode, decodeBody(resp.StatusCode, raw, out)
}

func (c *Client) token(ctx context.Context) string {
	if t := BearerFrom(ctx); t != "" {
		return t
	}
	if c.Tokens != nil {
		return c.Tokens.Token(ctx)
	}
	return ""
}

// decodeBody unwraps the envelope when the body has both success and data,
// and otherwise decodes the body as is. An empty body leaves out untouched.
func decodeBody(status int, raw []byte, out any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	payload := raw
	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) == nil {
		_, hasSuccess := fields["success"]
		data, hasData := fields["data"]
		if hasSuccess && hasData {
			var env struct {
				Success    bool            `json:"success"`
				StatusCode int             `json:"statusCode"`
				Message    json.RawMessage `json:"message"`
			}
			if err := json.Unmarshal(raw, &env); err != nil {
				return transportError("decode envelope", err)
			}
			if !env.Success {
				code := env.StatusCode
				if code == 0 {
					code = status
				}
				msg := messageText(env.Message)
				if msg == "" {
					msg = "request failed"
				}
				return &Error{Status: code, Message: msg}
			}
			payload = data
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return transportError("decode response", err)
	}
	return nil
}

// resourceOf keeps metric labels bounded: "/warranties/42?x=y" -> "warranties".
func resourceOf(endpoint string) string {
	p := strings.TrimLeft(endpoint, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}
