package app

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENGAGEMENTS_TABLE", "CHAT_SUMMARIES_TABLE", "PARAM_PREFIX", "ANTHROPIC_MODEL", "ANTHROPIC_BASE_URL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, Config{
		EngagementsTable:   "engagement-tracker-engagements-dev",
		ChatSummariesTable: "engagement-tracker-chat-summaries-dev",
		ParamPrefix:        "/pulse-engagement-tracker",
		AnthropicModel:     "claude-sonnet-4-20250514",
		LogLevel:           slog.LevelInfo,
	}, cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGAGEMENTS_TABLE", "engagements-prod")
	t.Setenv("CHAT_SUMMARIES_TABLE", "summaries-prod")
	t.Setenv("PARAM_PREFIX", "/tracker-prod")
	t.Setenv("ANTHROPIC_MODEL", "claude-opus-4-1")
	t.Setenv("ANTHROPIC_BASE_URL", " https://llm.internal/ ")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, Config{
		EngagementsTable:   "engagements-prod",
		ChatSummariesTable: "summaries-prod",
		ParamPrefix:        "/tracker-prod",
		AnthropicModel:     "claude-opus-4-1",
		AnthropicBaseURL:   "https://llm.internal/",
		LogLevel:           slog.LevelDebug,
	}, cfg)
}

func TestLoadConfig_RejectsUnknownLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"Warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tc := range cases {
		got, err := ParseLogLevel(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}
