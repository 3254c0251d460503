package sync

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ionutT77/PourPal/internal/models"
	"github.com/ionutT77/PourPal/internal/observability"
)

// Status reflects how the conversation is currently kept in sync.
type Status string

const (
	// StatusIdle means the synchronizer has not started or was stopped.
	StatusIdle Status = "idle"
	// StatusPolling means a pull timer is refreshing the history.
	StatusPolling Status = "polling"
	// StatusLive means a push channel is delivering events.
	StatusLive Status = "live"
	// StatusDisconnected means the push channel died. The view shows this
	// instead of silently falling back; reconnecting is a user action.
	StatusDisconnected Status = "disconnected"
)

var (
	// ErrEmptyMessage rejects whitespace-only sends before any remote call.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrSendInFlight rejects a send while a previous one is unconfirmed.
	ErrSendInFlight = errors.New("send already in flight")
)

// Synchronizer owns one conversation's message list. It is created per
// screen visit: Start on activation, Stop on every exit path.
type Synchronizer struct {
	transport Transport
	interval  time.Duration
	kind      string
	onUpdate  func()

	mu       sync.Mutex
	messages []models.Message
	status   Status

	stopOnce sync.Once
	stopped  chan struct{}
	sending  atomic.Bool
}

// SyncOption customises a Synchronizer.
type SyncOption func(*Synchronizer)

// WithInterval sets the pull period. Ignored for push transports.
func WithInterval(d time.Duration) SyncOption {
	return func(s *Synchronizer) { s.interval = d }
}

// WithOnUpdate registers a callback fired after every list change, for UI
// redraws.
func WithOnUpdate(fn func()) SyncOption {
	return func(s *Synchronizer) { s.onUpdate = fn }
}

// WithKind labels poll-cycle metrics.
func WithKind(kind string) SyncOption {
	return func(s *Synchronizer) { s.kind = kind }
}

// NewSynchronizer builds a synchronizer over the given transport.
func NewSynchronizer(transport Transport, opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		transport: transport,
		interval:  3 * time.Second,
		kind:      "chat",
		status:    StatusIdle,
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the full history and replaces the local list wholesale.
// Baseline primitive under both transport modes; used for first paint.
func (s *Synchronizer) Load(ctx context.Context) error {
	msgs, err := s.transport.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.messages = msgs
	s.mu.Unlock()
	s.update()
	return nil
}

// Start begins keeping the list current: a pull timer when the transport
// has no event stream, consumption of the stream when it does.
func (s *Synchronizer) Start(ctx context.Context) {
	if events := s.transport.Events(); events != nil {
		s.setStatus(StatusLive)
		go s.consume(events)
		return
	}
	s.setStatus(StatusPolling)
	go s.poll(ctx)
}

func (s *Synchronizer) poll(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopped:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// The timer may fire in the same instant Stop is called; a
			// stopped synchronizer must not issue another load.
			if s.isStopped() {
				return
			}
			if err := s.Load(ctx); err != nil {
				log.Printf("poll cycle failed: %v", err)
				continue
			}
			observability.IncPollCycle(s.kind)
		}
	}
}

func (s *Synchronizer) consume(events <-chan models.Message) {
	for msg := range events {
		if s.isStopped() {
			continue
		}
		s.mu.Lock()
		s.messages = append(s.messages, msg)
		s.mu.Unlock()
		s.update()
	}
	// Channel closed underneath us: surface the dark conversation instead
	// of crashing or silently going stale.
	if !s.isStopped() {
		s.setStatus(StatusDisconnected)
		s.update()
	}
}

// Send submits outgoing content through the active transport. Empty and
// whitespace-only bodies are rejected with no remote call; a second send
// while one is unconfirmed is rejected so the UI can keep its trigger
// disabled. Pull mode reloads immediately so the sender sees their own
// message; push mode relies on the channel echo.
func (s *Synchronizer) Send(ctx context.Context, body string) error {
	if strings.TrimSpace(body) == "" {
		observability.IncSendRejection()
		return ErrEmptyMessage
	}
	if !s.sending.CompareAndSwap(false, true) {
		return ErrSendInFlight
	}
	defer s.sending.Store(false)

	if err := s.transport.Send(ctx, body); err != nil {
		return err
	}
	if s.transport.Events() == nil {
		return s.Load(ctx)
	}
	return nil
}

// Stop releases the transport and halts all refreshing. Required on every
// exit path of the owning view; safe to call repeatedly.
func (s *Synchronizer) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopped)
		if err := s.transport.Close(); err != nil {
			log.Printf("transport close: %v", err)
		}
		s.setStatus(StatusIdle)
	})
}

// Messages returns a snapshot of the local list, delivery order preserved.
func (s *Synchronizer) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// Status reports the current sync mode.
func (s *Synchronizer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Sending reports whether a send is currently unconfirmed.
func (s *Synchronizer) Sending() bool {
	return s.sending.Load()
}

func (s *Synchronizer) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *Synchronizer) isStopped() bool {
	select {
	case <-s.stopped:
		return true
	default:
		return false
	}
}

func (s *Synchronizer) update() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}
