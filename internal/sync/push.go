package sync

import (
	"context"

	"github.com/ionutT77/PourPal/internal/models"
)

// PushChannel is the websocket surface the push transport consumes.
// ws.Channel satisfies it.
type PushChannel interface {
	Events() <-chan models.ChatEvent
	Send(text string) error
	Close() error
}

// PushTransport serves a conversation with a live event channel. History
// still comes from the REST fetch for first paint; afterwards each inbound
// event appends exactly one message.
type PushTransport struct {
	load           func(ctx context.Context) ([]models.Message, error)
	channel        PushChannel
	conversationID int
	out            chan models.Message
}

// NewPushTransport wires a group conversation to its push channel.
func NewPushTransport(svc GroupChatService, channel PushChannel, hangoutID int) *PushTransport {
	t := &PushTransport{
		load: func(ctx context.Context) ([]models.Message, error) {
			return svc.FetchMessages(ctx, hangoutID)
		},
		channel:        channel,
		conversationID: hangoutID,
		out:            make(chan models.Message, 16),
	}
	go t.forward()
	return t
}

// forward converts raw channel events into messages. The out channel closes
// when the underlying channel does, which is how the synchronizer learns
// the conversation went dark.
func (t *PushTransport) forward() {
	defer close(t.out)
	for event := range t.channel.Events() {
		t.out <- event.Message(t.conversationID)
	}
}

func (t *PushTransport) Load(ctx context.Context) ([]models.Message, error) {
	return t.load(ctx)
}

// Send writes through the channel. The server echo delivers the message
// back as an inbound event; nothing is appended locally here.
func (t *PushTransport) Send(_ context.Context, text string) error {
	return t.channel.Send(text)
}

func (t *PushTransport) Events() <-chan models.Message { return t.out }

func (t *PushTransport) Close() error { return t.channel.Close() }
