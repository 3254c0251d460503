package sync

import (
	"context"

	"github.com/ionutT77/PourPal/internal/models"
)

// PullTransport serves a conversation whose only remote surface is
// fetch-and-post endpoints. It carries no long-lived resource of its own;
// the synchronizer owns the polling timer.
type PullTransport struct {
	load func(ctx context.Context) ([]models.Message, error)
	send func(ctx context.Context, text string) error
}

// NewPrivateTransport builds the pull transport for a 1:1 conversation.
func NewPrivateTransport(svc PrivateChatService, peerID int) *PullTransport {
	return &PullTransport{
		load: func(ctx context.Context) ([]models.Message, error) {
			return svc.FetchConversation(ctx, peerID)
		},
		send: func(ctx context.Context, text string) error {
			return svc.SendPrivate(ctx, peerID, text)
		},
	}
}

// NewGroupPullTransport builds a pull transport for a hangout chat, for when
// the push channel is unavailable.
func NewGroupPullTransport(svc GroupChatService, hangoutID int) *PullTransport {
	return &PullTransport{
		load: func(ctx context.Context) ([]models.Message, error) {
			return svc.FetchMessages(ctx, hangoutID)
		},
		send: func(ctx context.Context, text string) error {
			return svc.PostMessage(ctx, hangoutID, text)
		},
	}
}

func (t *PullTransport) Load(ctx context.Context) ([]models.Message, error) {
	return t.load(ctx)
}

func (t *PullTransport) Send(ctx context.Context, text string) error {
	return t.send(ctx, text)
}

func (t *PullTransport) Events() <-chan models.Message { return nil }

func (t *PullTransport) Close() error { return nil }
