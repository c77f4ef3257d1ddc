package models

// Message belongs to exactly one post's conversation. Messages are
// append-only: within a conversation they are stored and displayed in
// send order, never edited or deleted.
type Message struct {
	Text        string `json:"text"`
	SenderName  string `json:"senderName"`
	SenderEmail string `json:"senderEmail"`
	// Timestamp is the wall-clock send instant in unix milliseconds,
	// used both for display and for activity ordering.
	Timestamp int64 `json:"timestamp"`
}
