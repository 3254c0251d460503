package sync_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ionutT77/PourPal/internal/mocks"
	"github.com/ionutT77/PourPal/internal/models"
	chatsync "github.com/ionutT77/PourPal/internal/sync"
)

func msg(id int, text string, at time.Time) models.Message {
	return models.Message{ID: id, ConversationID: 7, SenderID: 2, SenderName: "bob", Text: text, Timestamp: at}
}

func history() []models.Message {
	base := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	return []models.Message{
		msg(1, "first round is on me", base),
		msg(2, "see you at 8", base.Add(time.Minute)),
	}
}

func TestSendRejectsEmptyAndWhitespace(t *testing.T) {
	transport := new(mocks.TransportMock)
	s := chatsync.NewSynchronizer(transport)

	assert.ErrorIs(t, s.Send(context.Background(), ""), chatsync.ErrEmptyMessage)
	assert.ErrorIs(t, s.Send(context.Background(), "   "), chatsync.ErrEmptyMessage)
	assert.ErrorIs(t, s.Send(context.Background(), "\n\t"), chatsync.ErrEmptyMessage)

	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	transport.AssertNotCalled(t, "Load", mock.Anything)
	assert.Empty(t, s.Messages())
}

func TestRepeatedLoadIsIdempotent(t *testing.T) {
	transport := new(mocks.TransportMock)
	transport.On("Load", mock.Anything).Return(history(), nil)

	s := chatsync.NewSynchronizer(transport)
	require.NoError(t, s.Load(context.Background()))
	first := s.Messages()

	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, first, s.Messages())
	assert.Len(t, s.Messages(), 2)
}

func TestPushAppendsStrictlyAfterLoadedHistory(t *testing.T) {
	transport := &mocks.TransportMock{EventStream: make(chan models.Message, 1)}
	transport.On("Load", mock.Anything).Return(history(), nil)
	transport.On("Close").Return(nil)

	s := chatsync.NewSynchronizer(transport)
	defer s.Stop()

	require.NoError(t, s.Load(context.Background()))
	s.Start(context.Background())
	assert.Equal(t, chatsync.StatusLive, s.Status())

	c := msg(0, "running late", time.Date(2025, 6, 1, 20, 5, 0, 0, time.UTC))
	transport.EventStream <- c

	require.Eventually(t, func() bool {
		return len(s.Messages()) == 3
	}, time.Second, 5*time.Millisecond)

	got := s.Messages()
	assert.Equal(t, "first round is on me", got[0].Text)
	assert.Equal(t, "see you at 8", got[1].Text)
	assert.Equal(t, "running late", got[2].Text)
}

func TestPullSendReloadsImmediately(t *testing.T) {
	transport := new(mocks.TransportMock)
	transport.On("Send", mock.Anything, "cheers").Return(nil).Once()
	transport.On("Load", mock.Anything).Return(history(), nil).Once()

	s := chatsync.NewSynchronizer(transport)
	require.NoError(t, s.Send(context.Background(), "cheers"))

	assert.Len(t, s.Messages(), 2)
	transport.AssertExpectations(t)
}

func TestPushSendDoesNotAppendLocally(t *testing.T) {
	transport := &mocks.TransportMock{EventStream: make(chan models.Message)}
	transport.On("Send", mock.Anything, "cheers").Return(nil).Once()

	s := chatsync.NewSynchronizer(transport)
	require.NoError(t, s.Send(context.Background(), "cheers"))

	// No optimistic insert: the echo is the only way the message lands.
	assert.Empty(t, s.Messages())
	transport.AssertNotCalled(t, "Load", mock.Anything)
}

// countingTransport is a pull transport that counts loads without the
// locking caveats of a shared mock.
type countingTransport struct {
	mu     sync.Mutex
	loads  int
	closed int
}

func (t *countingTransport) Load(context.Context) ([]models.Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loads++
	return history(), nil
}

func (t *countingTransport) Send(context.Context, string) error { return nil }
func (t *countingTransport) Events() <-chan models.Message      { return nil }

func (t *countingTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed++
	return nil
}

func (t *countingTransport) loadCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loads
}

func TestStopHaltsPolling(t *testing.T) {
	transport := &countingTransport{}

	s := chatsync.NewSynchronizer(transport, chatsync.WithInterval(10*time.Millisecond))
	s.Start(context.Background())
	assert.Equal(t, chatsync.StatusPolling, s.Status())

	require.Eventually(t, func() bool {
		return transport.loadCount() > 0
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	loads := transport.loadCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, loads, transport.loadCount(), "no load may run after Stop")
	assert.Equal(t, chatsync.StatusIdle, s.Status())

	// Stop is idempotent.
	s.Stop()
	assert.Equal(t, 1, transport.closed)
}

func TestStopDropsLateEvents(t *testing.T) {
	transport := &mocks.TransportMock{EventStream: make(chan models.Message, 2)}
	transport.On("Close").Return(nil)

	s := chatsync.NewSynchronizer(transport)
	s.Start(context.Background())
	s.Stop()

	transport.EventStream <- msg(9, "too late", time.Now())
	close(transport.EventStream)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, s.Messages())
	assert.Equal(t, chatsync.StatusIdle, s.Status())
}

func TestChannelDeathMarksDisconnected(t *testing.T) {
	transport := &mocks.TransportMock{EventStream: make(chan models.Message)}
	transport.On("Close").Return(nil)

	s := chatsync.NewSynchronizer(transport)
	s.Start(context.Background())
	require.Equal(t, chatsync.StatusLive, s.Status())

	close(transport.EventStream)

	require.Eventually(t, func() bool {
		return s.Status() == chatsync.StatusDisconnected
	}, time.Second, 5*time.Millisecond)
}

func TestSecondSendWhileInFlight(t *testing.T) {
	transport := &mocks.TransportMock{EventStream: make(chan models.Message)}
	release := make(chan struct{})
	started := make(chan struct{})
	transport.On("Send", mock.Anything, "slow").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()

	s := chatsync.NewSynchronizer(transport)

	done := make(chan error, 1)
	go func() { done <- s.Send(context.Background(), "slow") }()

	<-started
	assert.True(t, s.Sending())
	assert.ErrorIs(t, s.Send(context.Background(), "eager"), chatsync.ErrSendInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.Sending())
}

func TestOnUpdateFiresOnListChange(t *testing.T) {
	transport := new(mocks.TransportMock)
	transport.On("Load", mock.Anything).Return(history(), nil)

	updates := 0
	s := chatsync.NewSynchronizer(transport, chatsync.WithOnUpdate(func() { updates++ }))
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 1, updates)
}
