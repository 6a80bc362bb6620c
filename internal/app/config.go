package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"engagement-tracker/internal/integrations/anthropic"
)

const (
	defaultEngagementsTable   = "engagement-tracker-engagements-dev"
	defaultChatSummariesTable = "engagement-tracker-chat-summaries-dev"
	defaultParamPrefix        = "/pulse-engagement-tracker"
)

// Config is read once at startup. Nothing below internal/app touches the
// environment.
type Config struct {
	EngagementsTable   string
	ChatSummariesTable string
	ParamPrefix        string
	AnthropicModel     string
	AnthropicBaseURL   string
	LogLevel           slog.Level
}

func LoadConfig() (Config, error) {
	level, err := ParseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	return Config{
		EngagementsTable:   envOr("ENGAGEMENTS_TABLE", defaultEngagementsTable),
		ChatSummariesTable: envOr("CHAT_SUMMARIES_TABLE", defaultChatSummariesTable),
		ParamPrefix:        envOr("PARAM_PREFIX", defaultParamPrefix),
		AnthropicModel:     envOr("ANTHROPIC_MODEL", anthropic.DefaultModel),
		AnthropicBaseURL:   strings.TrimSpace(os.Getenv("ANTHROPIC_BASE_URL")),
		LogLevel:           level,
	}, nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("app: unknown log level %q", s)
	}
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
