package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
)

func TestNewChatSummaryService_WiresDependencies(t *testing.T) {
	cfg := Config{
		EngagementsTable:   "engagements",
		ChatSummariesTable: "summaries",
		ParamPrefix:        "/tracker",
		AnthropicModel:     "claude-sonnet-4-20250514",
		AnthropicBaseURL:   "http://127.0.0.1:1/",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := newChatSummaryService(aws.Config{Region: "us-east-1"}, cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewChatSummaryService_RejectsBadConfig(t *testing.T) {
	base := Config{
		EngagementsTable:   "engagements",
		ChatSummariesTable: "summaries",
		ParamPrefix:        "/tracker",
		AnthropicModel:     "claude-sonnet-4-20250514",
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"engagements table", func(c *Config) { c.EngagementsTable = "" }},
		{"summaries table", func(c *Config) { c.ChatSummariesTable = "" }},
		{"param prefix", func(c *Config) { c.ParamPrefix = "/" }},
		{"model", func(c *Config) { c.AnthropicModel = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			_, err := newChatSummaryService(aws.Config{Region: "us-east-1"}, cfg, nil)
			require.Error(t, err)
		})
	}
}
