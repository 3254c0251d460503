// Package sync keeps a conversation's message list current against the
// remote side, over either a polling (pull) or websocket (push) transport,
// and owns the acquire-on-activate/release-on-deactivate lifetime of both.
package sync

import (
	"context"

	"github.com/ionutT77/PourPal/internal/models"
)

// Transport is the per-conversation capability the synchronizer drives.
// Pull and push implement the same contract; Events returns nil when the
// transport has no inbound stream.
type Transport interface {
	// Load fetches the full current history, chronological ascending.
	Load(ctx context.Context) ([]models.Message, error)
	// Send submits one outgoing message.
	Send(ctx context.Context, text string) error
	// Events is the inbound stream for push transports, nil for pull.
	Events() <-chan models.Message
	// Close releases the transport's resources. Idempotent.
	Close() error
}

// GroupChatService is the API surface group conversations consume.
type GroupChatService interface {
	FetchMessages(ctx context.Context, hangoutID int) ([]models.Message, error)
	PostMessage(ctx context.Context, hangoutID int, text string) error
}

// PrivateChatService is the API surface 1:1 conversations consume.
type PrivateChatService interface {
	FetchConversation(ctx context.Context, peerID int) ([]models.Message, error)
	SendPrivate(ctx context.Context, peerID int, text string) error
}
