package sync

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ionutT77/PourPal/internal/models"
	"github.com/ionutT77/PourPal/internal/observability"
)

// ConversationService is the API surface the inbox consumes.
type ConversationService interface {
	ListConversations(ctx context.Context) ([]models.ConversationSummary, error)
	MarkConversationRead(ctx context.Context, peerID int) error
}

// Inbox keeps the private-message conversation list current. Summaries are
// recomputed wholesale each cycle and never persisted.
type Inbox struct {
	svc      ConversationService
	interval time.Duration
	onUpdate func()

	mu        sync.Mutex
	summaries []models.ConversationSummary

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewInbox builds an inbox poller.
func NewInbox(svc ConversationService, interval time.Duration, onUpdate func()) *Inbox {
	return &Inbox{
		svc:      svc,
		interval: interval,
		onUpdate: onUpdate,
		stopped:  make(chan struct{}),
	}
}

// Refresh fetches the summaries once, replacing the local set.
func (in *Inbox) Refresh(ctx context.Context) error {
	summaries, err := in.svc.ListConversations(ctx)
	if err != nil {
		return err
	}

	in.mu.Lock()
	in.summaries = summaries
	in.mu.Unlock()
	if in.onUpdate != nil {
		in.onUpdate()
	}
	return nil
}

// Start polls until Stop. Acquired when the inbox view activates.
func (in *Inbox) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(in.interval)
		defer ticker.Stop()
		for {
			select {
			case <-in.stopped:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if in.isStopped() {
					return
				}
				if err := in.Refresh(ctx); err != nil {
					log.Printf("inbox refresh failed: %v", err)
					continue
				}
				observability.IncPollCycle("inbox")
			}
		}
	}()
}

// Open marks the conversation with peerID read. Navigating into the
// conversation is the only path that zeroes an unread count; the local copy
// drops immediately so the badge clears before the next cycle.
func (in *Inbox) Open(ctx context.Context, peerID int) error {
	if err := in.svc.MarkConversationRead(ctx, peerID); err != nil {
		return err
	}

	in.mu.Lock()
	for i := range in.summaries {
		if in.summaries[i].PeerID == peerID {
			in.summaries[i].UnreadCount = 0
		}
	}
	in.mu.Unlock()
	if in.onUpdate != nil {
		in.onUpdate()
	}
	return nil
}

// Stop halts polling. Required on every exit path of the inbox view.
func (in *Inbox) Stop() {
	in.stopOnce.Do(func() {
		close(in.stopped)
	})
}

// Summaries returns a snapshot of the current conversation list.
func (in *Inbox) Summaries() []models.ConversationSummary {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]models.ConversationSummary(nil), in.summaries...)
}

func (in *Inbox) isStopped() bool {
	select {
	case <-in.stopped:
		return true
	default:
		return false
	}
}
