package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"engagement-tracker/internal/domain"
)

func TestNormalizeMessages_Empty(t *testing.T) {
	for _, msgs := range [][]domain.ChatMessage{nil, {}} {
		got, ok := normalizeMessages(msgs)
		require.False(t, ok)
		require.Empty(t, got.Text)
		require.Empty(t, got.Participants)
	}
}

func TestNormalizeMessages_LinesAndParticipants(t *testing.T) {
	got, ok := normalizeMessages([]domain.ChatMessage{
		{SenderName: "Ann", Text: "kickoff at 10"},
		{Text: "bot says hi"},
		{Text: "Build #42 passed", Bare: true},
		{SenderName: "Bo", Text: "ack"},
		{SenderName: "Ann", Text: "thanks"},
		{SenderName: "Cy", Text: ""},
	})
	require.True(t, ok)
	require.Equal(t, strings.Join([]string{
		"[Ann]: kickoff at 10",
		"[Unknown]: bot says hi",
		"Build #42 passed",
		"[Bo]: ack",
		"[Ann]: thanks",
		"",
	}, "\n"), got.Text)
	require.Equal(t, []string{"Ann", "Bo"}, got.Participants)
}

func TestNormalizeMessages_LiteralUnknownIsNotAParticipant(t *testing.T) {
	got, ok := normalizeMessages([]domain.ChatMessage{{SenderName: "Unknown", Text: "x"}})
	require.True(t, ok)
	require.Empty(t, got.Participants)
}

func TestNormalizeMessages_WhitespaceOnlyIsUnusable(t *testing.T) {
	got, ok := normalizeMessages([]domain.ChatMessage{
		{Text: "   ", Bare: true},
		{SenderName: "Ann"},
	})
	require.False(t, ok)
	require.Empty(t, got.Participants)
}

func TestNormalizeMessages_UnreadableKeepsNoParticipantsFromEmptyText(t *testing.T) {
	_, ok := normalizeMessages([]domain.ChatMessage{{SenderName: "Ann", Text: ""}})
	require.False(t, ok)
}

func TestNormalizeMessages_TruncatesToBudget(t *testing.T) {
	long := strings.Repeat("é", maxTranscriptChars)
	got, ok := normalizeMessages([]domain.ChatMessage{{SenderName: "Ann", Text: long}})
	require.True(t, ok)
	require.Equal(t, maxTranscriptChars, len([]rune(got.Text)))
	require.True(t, strings.HasPrefix(got.Text, "[Ann]: é"))
}

func TestTruncateRunes(t *testing.T) {
	require.Equal(t, "abc", truncateRunes("abc", 5))
	require.Equal(t, "ab", truncateRunes("abc", 2))
	require.Equal(t, "日本", truncateRunes("日本語", 2))
	require.Equal(t, "日本語", truncateRunes("日本語", 3))
}
