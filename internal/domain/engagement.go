package domain

// EngagementRef is the slice of an engagement record the chat summary needs.
type EngagementRef struct {
	ID           string
	Name         string
	ChatSpaceURL string
}
