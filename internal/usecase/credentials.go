package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"engagement-tracker/internal/domain"
)

const (
	chatEndpointParam = "/google-chat-mcp"
	anthropicKeyParam = "/anthropic-api-key"
	chatAPIKeyQuery   = "x-api-key"
)

type credentials struct {
	chat         domain.ChatEndpoint
	anthropicKey string
}

// tokenPayload is the JSON shape some deployments store instead of a bare key.
type tokenPayload struct {
	Token string `json:"token"`
}

func (s *ChatSummaryService) loadCredentials(ctx context.Context) (credentials, error) {
	rawEndpoint, err := s.params.GetParameter(ctx, s.paramPrefix+chatEndpointParam)
	if err != nil {
		return credentials{}, fmt.Errorf("usecase: load chat endpoint: %w", err)
	}
	ep, err := parseChatEndpoint(rawEndpoint)
	if err != nil {
		return credentials{}, err
	}

	rawKey, err := s.params.GetParameter(ctx, s.paramPrefix+anthropicKeyParam)
	if err != nil {
		return credentials{}, fmt.Errorf("usecase: load anthropic key: %w", err)
	}
	key, err := parseAPIKey(rawKey)
	if err != nil {
		return credentials{}, err
	}
	return credentials{chat: ep, anthropicKey: key}, nil
}

// parseChatEndpoint splits a stored backend URL such as
// https://host/abc/sse?x-api-key=K into its base URL and API key.
func parseChatEndpoint(raw string) (domain.ChatEndpoint, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return domain.ChatEndpoint{}, fmt.Errorf("usecase: parse chat endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return domain.ChatEndpoint{}, errors.New("usecase: chat endpoint must be an absolute URL")
	}
	apiKey := u.Query().Get(chatAPIKeyQuery)
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimSuffix(strings.TrimRight(u.Path, "/"), "/sse")
	u.RawPath = ""
	return domain.ChatEndpoint{BaseURL: u.String(), APIKey: apiKey}, nil
}

func parseAPIKey(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var tp tokenPayload
		if err := json.Unmarshal([]byte(raw), &tp); err != nil {
			return "", fmt.Errorf("usecase: unmarshal anthropic key payload: %w", err)
		}
		raw = strings.TrimSpace(tp.Token)
	}
	if raw == "" {
		return "", errors.New("usecase: anthropic API key is empty")
	}
	return raw, nil
}
