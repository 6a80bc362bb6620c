package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"engagement-tracker/internal/domain"
)

func TestParseChatEndpoint(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.ChatEndpoint
	}{
		{
			raw:  "https://mcp.example.com/5b4a6a39/sse?x-api-key=secret",
			want: domain.ChatEndpoint{BaseURL: "https://mcp.example.com/5b4a6a39", APIKey: "secret"},
		},
		{
			raw:  "https://mcp.example.com/5b4a6a39/sse/",
			want: domain.ChatEndpoint{BaseURL: "https://mcp.example.com/5b4a6a39"},
		},
		{
			raw:  " http://localhost:9000?x-api-key=k&other=1 ",
			want: domain.ChatEndpoint{BaseURL: "http://localhost:9000", APIKey: "k"},
		},
	}
	for _, tc := range cases {
		got, err := parseChatEndpoint(tc.raw)
		require.NoError(t, err, "raw=%q", tc.raw)
		require.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestParseChatEndpoint_RejectsRelative(t *testing.T) {
	_, err := parseChatEndpoint("mcp.example.com/sse")
	require.ErrorContains(t, err, "absolute")
}

func TestParseAPIKey(t *testing.T) {
	key, err := parseAPIKey(" sk-ant-raw\n")
	require.NoError(t, err)
	require.Equal(t, "sk-ant-raw", key)

	key, err = parseAPIKey(`{"token":"sk-ant-json"}`)
	require.NoError(t, err)
	require.Equal(t, "sk-ant-json", key)

	_, err = parseAPIKey(`{"other":"x"}`)
	require.ErrorContains(t, err, "empty")

	_, err = parseAPIKey(`{"broken`)
	require.ErrorContains(t, err, "unmarshal")

	_, err = parseAPIKey("  ")
	require.ErrorContains(t, err, "empty")
}
