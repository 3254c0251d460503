package models

import "time"

// ConversationSummary is one row of the private-message inbox.
type ConversationSummary struct {
	PeerID          int       `json:"user_id"`
	PeerName        string    `json:"user_name"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
}
