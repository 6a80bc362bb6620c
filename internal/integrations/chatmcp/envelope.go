package chatmcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"engagement-tracker/internal/domain"
)

// envelope covers the wrapper shapes the backend has been seen to return:
// {"content":[{"text":"<json>"}]} and {"messages":[...]}.
type envelope struct {
	Content  []json.RawMessage `json:"content"`
	Messages json.RawMessage   `json:"messages"`
}

type contentItem struct {
	Text *string `json:"text"`
}

type wireMessage struct {
	Sender  json.RawMessage `json:"sender"`
	Text    string          `json:"text"`
	Message string          `json:"message"`
}

type wireSender struct {
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
}

func decodeEnvelope(raw []byte) ([]domain.ChatMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty body")
	}

	switch raw[0] {
	case '[':
		return decodeMessageList(raw)
	case '{':
	default:
		return nil, fmt.Errorf("unexpected JSON value starting with %q", raw[0])
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	if text, ok := firstContentText(env.Content); ok {
		if msgs, err := decodeEmbedded(text); err == nil {
			return msgs, nil
		}
		// Prose rather than JSON: the content items are the records.
		return decodeItems(env.Content), nil
	}

	if isJSONArray(env.Messages) {
		return decodeMessageList(env.Messages)
	}
	if len(env.Content) > 0 {
		return decodeItems(env.Content), nil
	}
	return nil, errors.New("unrecognized response envelope")
}

func firstContentText(items []json.RawMessage) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	var first contentItem
	if err := json.Unmarshal(items[0], &first); err != nil || first.Text == nil {
		return "", false
	}
	return *first.Text, true
}

func decodeEmbedded(text string) ([]domain.ChatMessage, error) {
	raw := bytes.TrimSpace([]byte(text))
	if isJSONArray(raw) {
		return decodeMessageList(raw)
	}
	if len(raw) > 0 && raw[0] == '{' {
		var inner envelope
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, err
		}
		if isJSONArray(inner.Messages) {
			return decodeMessageList(inner.Messages)
		}
	}
	return nil, errors.New("embedded text is not a message list")
}

func decodeMessageList(raw []byte) ([]domain.ChatMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return decodeItems(items), nil
}

// decodeItems keeps structured and bare-string records and drops anything
// else (numbers, nulls, nested arrays).
func decodeItems(items []json.RawMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(items))
	for _, item := range items {
		if msg, ok := decodeMessage(item); ok {
			out = append(out, msg)
		}
	}
	return out
}

func decodeMessage(raw json.RawMessage) (domain.ChatMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return domain.ChatMessage{}, false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return domain.ChatMessage{}, false
		}
		return domain.ChatMessage{Text: s, Bare: true}, true
	case '{':
		var m wireMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return domain.ChatMessage{}, false
		}
		text := m.Text
		if text == "" {
			text = m.Message
		}
		return domain.ChatMessage{SenderName: senderName(m.Sender), Text: text}, true
	default:
		return domain.ChatMessage{}, false
	}
}

func senderName(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '{':
		var s wireSender
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		if s.DisplayName != "" {
			return s.DisplayName
		}
		return s.Name
	case '"':
		var s string
		_ = json.Unmarshal(raw, &s)
		return s
	default:
		return ""
	}
}

func isJSONArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
