package domain

import "strings"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
)

// ParseSentiment maps free-form model output onto a known sentiment,
// defaulting to neutral.
func ParseSentiment(s string) Sentiment {
	v := Sentiment(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case SentimentPositive, SentimentNegative, SentimentMixed:
		return v
	default:
		return SentimentNeutral
	}
}

// SummaryResult is the digest delivered to callers and stored in the cache.
type SummaryResult struct {
	Summary       string    `json:"summary"`
	Topics        []string  `json:"topics"`
	Sentiment     Sentiment `json:"sentiment"`
	KeyHighlights []string  `json:"keyHighlights"`
	ActionItems   []string  `json:"actionItems"`
	Participants  []string  `json:"participants"`
}

// CacheEntry is the persisted summary for one engagement.
type CacheEntry struct {
	EngagementID string
	Summary      SummaryResult
	CachedAt     int64
	MessageCount int
}
