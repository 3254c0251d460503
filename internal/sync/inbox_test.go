package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ionutT77/PourPal/internal/mocks"
	"github.com/ionutT77/PourPal/internal/models"
	chatsync "github.com/ionutT77/PourPal/internal/sync"
)

func summaries(unreadForMara int) []models.ConversationSummary {
	return []models.ConversationSummary{
		{PeerID: 2, PeerName: "mara", LastMessage: "see you there", UnreadCount: unreadForMara},
		{PeerID: 5, PeerName: "radu", LastMessage: "ok", UnreadCount: 1},
	}
}

func TestRefreshReplacesSummariesWholesale(t *testing.T) {
	svc := new(mocks.ConversationServiceMock)
	svc.On("ListConversations", mock.Anything).Return(summaries(3), nil).Once()
	svc.On("ListConversations", mock.Anything).Return(summaries(4), nil).Once()

	inbox := chatsync.NewInbox(svc, time.Second, nil)
	require.NoError(t, inbox.Refresh(context.Background()))
	assert.Equal(t, 3, inbox.Summaries()[0].UnreadCount)

	require.NoError(t, inbox.Refresh(context.Background()))
	got := inbox.Summaries()
	assert.Len(t, got, 2)
	assert.Equal(t, 4, got[0].UnreadCount)
}

func TestOpenResetsUnreadCount(t *testing.T) {
	svc := new(mocks.ConversationServiceMock)
	svc.On("ListConversations", mock.Anything).Return(summaries(3), nil).Once()
	svc.On("MarkConversationRead", mock.Anything, 2).Return(nil).Once()
	// After opening, the server reports the conversation as read.
	svc.On("ListConversations", mock.Anything).Return(summaries(0), nil).Once()

	inbox := chatsync.NewInbox(svc, time.Second, nil)
	require.NoError(t, inbox.Refresh(context.Background()))
	require.Equal(t, 3, inbox.Summaries()[0].UnreadCount)

	require.NoError(t, inbox.Open(context.Background(), 2))
	// Local badge clears immediately.
	assert.Equal(t, 0, inbox.Summaries()[0].UnreadCount)
	// Other conversations are untouched.
	assert.Equal(t, 1, inbox.Summaries()[1].UnreadCount)

	// And the next cycle agrees.
	require.NoError(t, inbox.Refresh(context.Background()))
	assert.Equal(t, 0, inbox.Summaries()[0].UnreadCount)
	svc.AssertExpectations(t)
}

func TestOpenPropagatesMarkReadFailure(t *testing.T) {
	svc := new(mocks.ConversationServiceMock)
	svc.On("ListConversations", mock.Anything).Return(summaries(3), nil).Once()
	svc.On("MarkConversationRead", mock.Anything, 2).Return(assert.AnError).Once()

	inbox := chatsync.NewInbox(svc, time.Second, nil)
	require.NoError(t, inbox.Refresh(context.Background()))

	assert.Error(t, inbox.Open(context.Background(), 2))
	// The badge stays until the server confirms the read.
	assert.Equal(t, 3, inbox.Summaries()[0].UnreadCount)
}

func TestInboxStopHaltsPolling(t *testing.T) {
	svc := new(mocks.ConversationServiceMock)
	calls := make(chan struct{}, 64)
	svc.On("ListConversations", mock.Anything).Run(func(mock.Arguments) {
		calls <- struct{}{}
	}).Return(summaries(0), nil)

	inbox := chatsync.NewInbox(svc, 10*time.Millisecond, nil)
	inbox.Start(context.Background())

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("inbox never polled")
	}

	inbox.Stop()
	// Drain whatever was already in flight, then expect silence.
	time.Sleep(30 * time.Millisecond)
	for {
		select {
		case <-calls:
			continue
		default:
		}
		break
	}
	select {
	case <-calls:
		t.Fatal("inbox polled after Stop")
	case <-time.After(50 * time.Millisecond):
	}

	inbox.Stop()
}
