package domain

// Message represents an immutable chat entry.
// Author is the username captured at send time: a later username change
// never rewrites history.
type Message struct {
	Author    string
	Content   string
	Timestamp string
}
