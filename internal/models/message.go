package models

import "time"

// Message represents one chat message, group or private. ConversationID is
// the hangout id for group chat and the peer user id for private chat.
type Message struct {
	ID             int       `json:"id"`
	ConversationID int       `json:"conversation_id"`
	SenderID       int       `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	SenderPhoto    string    `json:"sender_photo,omitempty"`
	Text           string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
}

// ChatEvent is the payload emitted by the group-chat push channel. Server
// echoes lack a message id; only history fetches carry one.
type ChatEvent struct {
	SenderID    int       `json:"user_id"`
	SenderName  string    `json:"user_name"`
	SenderPhoto string    `json:"user_photo,omitempty"`
	Text        string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

// Message converts a push event into the message shape the local list holds.
func (e ChatEvent) Message(conversationID int) Message {
	return Message{
		ConversationID: conversationID,
		SenderID:       e.SenderID,
		SenderName:     e.SenderName,
		SenderPhoto:    e.SenderPhoto,
		Text:           e.Text,
		Timestamp:      e.Timestamp,
	}
}
