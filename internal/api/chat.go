package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ionutT77/PourPal/internal/models"
)

// groupMessage is the wire shape of a hangout chat message.
type groupMessage struct {
	ID        int       `json:"id"`
	Hangout   int       `json:"hangout"`
	UserID    int       `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserPhoto string    `json:"user_photo"`
	Text      string    `json:"message_text"`
	Timestamp time.Time `json:"timestamp"`
}

// privateMessage is the wire shape of a 1:1 message. The two chat surfaces
// use different field names on the server; both normalise to models.Message.
type privateMessage struct {
	ID         int       `json:"id"`
	Sender     int       `json:"sender"`
	SenderName string    `json:"sender_name"`
	Receiver   int       `json:"receiver"`
	Text       string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// FetchMessages returns the full group-chat history of a hangout, ascending
// by timestamp.
func (c *Client) FetchMessages(ctx context.Context, hangoutID int) ([]models.Message, error) {
	var wire []groupMessage
	if err := c.do(ctx, "chat.messages", http.MethodGet, fmt.Sprintf("/chat/%d/messages/", hangoutID), nil, nil, &wire); err != nil {
		return nil, err
	}

	msgs := make([]models.Message, 0, len(wire))
	for _, m := range wire {
		msgs = append(msgs, models.Message{
			ID:             m.ID,
			ConversationID: m.Hangout,
			SenderID:       m.UserID,
			SenderName:     m.UserName,
			SenderPhoto:    m.UserPhoto,
			Text:           m.Text,
			Timestamp:      m.Timestamp,
		})
	}
	return msgs, nil
}

// PostMessage sends a group-chat message over the REST surface. Group chat
// normally sends over the push channel; this is the pull-mode fallback.
func (c *Client) PostMessage(ctx context.Context, hangoutID int, text string) error {
	body := map[string]string{"message_text": text}
	return c.do(ctx, "chat.post", http.MethodPost, fmt.Sprintf("/chat/%d/messages/", hangoutID), nil, body, nil)
}

// FetchConversation returns the full 1:1 history with peerID, ascending by
// timestamp.
func (c *Client) FetchConversation(ctx context.Context, peerID int) ([]models.Message, error) {
	var wire []privateMessage
	if err := c.do(ctx, "chat.conversation", http.MethodGet, fmt.Sprintf("/chat/private/%d/", peerID), nil, nil, &wire); err != nil {
		return nil, err
	}

	msgs := make([]models.Message, 0, len(wire))
	for _, m := range wire {
		msgs = append(msgs, models.Message{
			ID:             m.ID,
			ConversationID: peerID,
			SenderID:       m.Sender,
			SenderName:     m.SenderName,
			Text:           m.Text,
			Timestamp:      m.CreatedAt,
		})
	}
	return msgs, nil
}

// SendPrivate sends a 1:1 message to peerID.
func (c *Client) SendPrivate(ctx context.Context, peerID int, text string) error {
	body := map[string]any{"receiver": peerID, "message": text}
	return c.do(ctx, "chat.send_private", http.MethodPost, "/chat/private/send/", nil, body, nil)
}

// ListConversations returns the inbox summaries, unread counts included.
func (c *Client) ListConversations(ctx context.Context) ([]models.ConversationSummary, error) {
	var summaries []models.ConversationSummary
	err := c.do(ctx, "chat.conversations", http.MethodGet, "/chat/private/conversations/", nil, nil, &summaries)
	return summaries, err
}

// MarkConversationRead zeroes the unread count for the conversation with
// peerID. Opening a conversation is the only caller.
func (c *Client) MarkConversationRead(ctx context.Context, peerID int) error {
	return c.do(ctx, "chat.mark_read", http.MethodPost, fmt.Sprintf("/chat/private/%d/read/", peerID), nil, nil, nil)
}
