package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"github.com/staffhub/staffhub/internal/config"
)

// Failure classes surfaced to callers. Rate-limit and payment errors carry
// the upstream status through to the HTTP boundary unchanged.
var (
	ErrMissingAPIKey   = errors.New("gateway api key is not configured")
	ErrRateLimited     = errors.New("gateway rate limit exceeded")
	ErrPaymentRequired = errors.New("gateway payment required")
	ErrNoToolCall      = errors.New("no tool call in gateway response")
)

// Client talks to an OpenAI-compatible chat-completions gateway. There is no
// retry: a failed call is reported to the caller, who decides whether to
// re-invoke the whole operation.
type Client struct {
	cfg    config.GatewayConfig
	client *http.Client

	closed int32 // atomic flag for Close()
}

// package-level logger for pkg/aigateway; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/aigateway. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// NewClient creates a new gateway client wrapper.
func NewClient(cfg config.GatewayConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{cfg: cfg, client: httpClient}
	logger.Info("aigateway: NewClient created", slog.String("base_url", cfg.BaseURL), slog.String("model", cfg.Model))
	return c, nil
}

func NewDefaultClient(cfg config.GatewayConfig) (*Client, error) {
	defaultClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

// Close releases idle connections on the underlying HTTP transport when
// supported. Close is idempotent and safe to call multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

// Model returns the configured default model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Chat sends a chat-completions request and returns the decoded response.
// Upstream 429 and 402 map to their sentinel errors; any other non-success
// status is a generic failure.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	u := base.ResolveReference(&url.URL{Path: "/v1/chat/completions"})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, ErrPaymentRequired
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Error("aigateway: upstream error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(b)),
		)
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	logger.Info("aigateway: chat completed",
		slog.String("model", req.Model),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	)
	return &out, nil
}

// ToolArguments extracts the raw arguments of the first tool call in the
// response. It returns ErrNoToolCall when the model answered without one.
func (r *ChatResponse) ToolArguments() (json.RawMessage, error) {
	if len(r.Choices) == 0 {
		return nil, ErrNoToolCall
	}
	calls := r.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return nil, ErrNoToolCall
	}
	return json.RawMessage(calls[0].Function.Arguments), nil
}

// Content returns the plain text content of the first choice.
func (r *ChatResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
