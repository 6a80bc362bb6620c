package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSentiment(t *testing.T) {
	cases := map[string]Sentiment{
		"positive":   SentimentPositive,
		" Negative ": SentimentNegative,
		"MIXED":      SentimentMixed,
		"neutral":    SentimentNeutral,
		"ecstatic":   SentimentNeutral,
		"":           SentimentNeutral,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseSentiment(in), "input=%q", in)
	}
}
