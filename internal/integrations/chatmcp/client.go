package chatmcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"

	"engagement-tracker/internal/domain"
)

const (
	defaultLimit   = 50
	defaultTimeout = 30 * time.Second
	listTool       = "list_messages"
	apiKeyHeader   = "x-api-key"
	maxBodyBytes   = 4 << 20
)

type toolCallRequest struct {
	Name      string           `json:"name"`
	Arguments listMessagesArgs `json:"arguments"`
}

type listMessagesArgs struct {
	SpaceID string `json:"space_id"`
	Limit   int    `json:"limit"`
}

// HTTPStatusError captures non-2xx responses from the chat backend.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("chatmcp: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client fetches recent messages for a chat space through the backend's
// tools/call endpoint.
type Client struct {
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{httpClient: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func toolsURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/tools/call"
}

// ListMessages asks the backend for up to limit recent messages in spaceID.
// Backend order is preserved. Every failure is reported through the Err
// variant; callers decide how to degrade.
func (c *Client) ListMessages(ctx context.Context, ep domain.ChatEndpoint, spaceID string, limit int) fn.Result[[]domain.ChatMessage] {
	msgs, err := c.listMessages(ctx, ep, spaceID, limit)
	if err != nil {
		return fn.Err[[]domain.ChatMessage](err)
	}
	return fn.Ok(msgs)
}

func (c *Client) listMessages(ctx context.Context, ep domain.ChatEndpoint, spaceID string, limit int) ([]domain.ChatMessage, error) {
	if strings.TrimSpace(ep.BaseURL) == "" {
		return nil, errors.New("chatmcp: endpoint base URL is empty")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	body, err := json.Marshal(toolCallRequest{
		Name:      listTool,
		Arguments: listMessagesArgs{SpaceID: spaceID, Limit: limit},
	})
	if err != nil {
		return nil, fmt.Errorf("chatmcp: marshal request: %w", err)
	}

	target := toolsURL(ep.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("chatmcp: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if ep.APIKey != "" {
		req.Header.Set(apiKeyHeader, ep.APIKey)
	}

	raw, err := c.do(req, target)
	if err != nil {
		return nil, fmt.Errorf("chatmcp: list messages: %w", err)
	}

	msgs, err := decodeEnvelope(raw)
	if err != nil {
		return nil, fmt.Errorf("chatmcp: decode response: %w", err)
	}
	return msgs, nil
}

func (c *Client) do(req *http.Request, target string) ([]byte, error) {
	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{StatusCode: res.StatusCode, URL: target, Body: string(buf)}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}
