package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/lightningnetwork/lnd/fn/v2"

	"engagement-tracker/internal/domain"
)

const (
	maxFallbackChars = 500

	noActivityText = "No recent chat activity found in this space."
	unreadableText = "Chat space exists but no readable messages found."
	unparsableText = "Unable to generate summary"
)

// Completer sends one prompt to a language model and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

type modelSummary struct {
	Summary       string   `json:"summary"`
	Topics        []string `json:"topics"`
	Sentiment     string   `json:"sentiment"`
	KeyHighlights []string `json:"keyHighlights"`
	ActionItems   []string `json:"actionItems"`
}

// summarizeTranscript asks the model for a structured digest of t. A reply
// that is not valid JSON still succeeds, carrying the raw text as the
// summary; only a failed model call yields the Err variant.
func summarizeTranscript(ctx context.Context, llm Completer, t domain.NormalizedTranscript, apiKey string) fn.Result[domain.SummaryResult] {
	raw, err := llm.Complete(ctx, apiKey, buildSummaryPrompt(t.Text))
	if err != nil {
		return fn.Err[domain.SummaryResult](newError(ErrorUpstream, "summarization_failed", err))
	}
	return fn.Ok(parseSummary(raw, t.Participants))
}

func buildSummaryPrompt(transcript string) string {
	return strings.Join([]string{
		"Analyze this Google Chat conversation and produce a structured summary.",
		"",
		"CHAT MESSAGES:",
		truncateRunes(transcript, maxTranscriptChars),
		"",
		"Respond with JSON in exactly this shape:",
		`{`,
		`    "summary": "A 2-3 sentence overview of what was discussed",`,
		`    "topics": ["topic1", "topic2", "topic3"],`,
		`    "sentiment": "positive" or "neutral" or "negative" or "mixed",`,
		`    "keyHighlights": ["highlight1", "highlight2", "highlight3"],`,
		`    "actionItems": ["action1", "action2"]`,
		`}`,
		"",
		"Focus on:",
		"- Key discussion points and decisions",
		"- Blockers or issues raised",
		"- Progress updates",
		"- Action items and next steps",
		"",
		"Return ONLY the JSON, no other text.",
	}, "\n")
}

// parseSummary decodes the model reply. participants always comes from the
// transcript, never from the model.
func parseSummary(raw string, participants []string) domain.SummaryResult {
	content := stripCodeFence(raw)

	var m modelSummary
	if strings.HasPrefix(content, "{") && json.Unmarshal([]byte(content), &m) == nil {
		return domain.SummaryResult{
			Summary:       m.Summary,
			Topics:        nonNil(m.Topics),
			Sentiment:     domain.ParseSentiment(m.Sentiment),
			KeyHighlights: nonNil(m.KeyHighlights),
			ActionItems:   nonNil(m.ActionItems),
			Participants:  nonNil(participants),
		}
	}

	text := truncateRunes(content, maxFallbackChars)
	if text == "" {
		text = unparsableText
	}
	return cannedSummary(text, participants)
}

// stripCodeFence removes a leading ``` or ```json marker and a trailing ```.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSpace(s)
}

func cannedSummary(text string, participants []string) domain.SummaryResult {
	return domain.SummaryResult{
		Summary:       text,
		Topics:        []string{},
		Sentiment:     domain.SentimentNeutral,
		KeyHighlights: []string{},
		ActionItems:   []string{},
		Participants:  nonNil(participants),
	}
}

func degradedSummary(err error, participants []string) domain.SummaryResult {
	cause := err
	var ucErr *Error
	if errors.As(err, &ucErr) && ucErr.Err != nil {
		cause = ucErr.Err
	}
	return cannedSummary("Error generating summary: "+cause.Error(), participants)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
