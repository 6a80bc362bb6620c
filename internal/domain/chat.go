package domain

// ChatMessage is one record returned by the chat backend. Bare-string records
// have Bare set and carry their whole content in Text.
type ChatMessage struct {
	SenderName string
	Text       string
	Bare       bool
}

// NormalizedTranscript is the flattened chat history handed to the model.
type NormalizedTranscript struct {
	Text         string
	Participants []string
}

// ChatEndpoint locates the chat backend's tools endpoint.
type ChatEndpoint struct {
	BaseURL string
	APIKey  string
}
