// Package repository provides the data access layer over the local
// key-value store: posts, the current identity, and per-post
// conversations.
package repository

// Store key layout. Conversations and report flags are per-post keys so
// derived indexes can be rebuilt by enumerating the store.
const (
	postsKey       = "lostfound_posts"
	userKey        = "lostfound_currentUser"
	messagesPrefix = "lostfound_messages_"
	reportedPrefix = "lostfound_reported_"
)
