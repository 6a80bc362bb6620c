package usecase

import (
	"sort"
	"strings"

	"engagement-tracker/internal/domain"
)

const (
	maxTranscriptChars = 8000
	unknownSender      = "Unknown"
)

// normalizeMessages flattens chat records into "[sender]: text" lines in
// input order and collects the named senders. ok is false when no line
// carries any non-whitespace content.
func normalizeMessages(msgs []domain.ChatMessage) (domain.NormalizedTranscript, bool) {
	var b strings.Builder
	seen := make(map[string]struct{})

	for _, m := range msgs {
		if m.Bare {
			if m.Text == "" {
				continue
			}
			b.WriteString(m.Text)
			b.WriteByte('\n')
			continue
		}
		if m.Text == "" {
			continue
		}
		sender := strings.TrimSpace(m.SenderName)
		if sender == "" {
			sender = unknownSender
		}
		b.WriteString("[" + sender + "]: " + m.Text + "\n")
		if sender != unknownSender {
			seen[sender] = struct{}{}
		}
	}

	participants := make([]string, 0, len(seen))
	for name := range seen {
		participants = append(participants, name)
	}
	sort.Strings(participants)

	text := b.String()
	return domain.NormalizedTranscript{
		Text:         truncateRunes(text, maxTranscriptChars),
		Participants: participants,
	}, strings.TrimSpace(text) != ""
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
