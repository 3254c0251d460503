package friends_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ionutT77/PourPal/internal/friends"
	"github.com/ionutT77/PourPal/internal/mocks"
	"github.com/ionutT77/PourPal/internal/models"
)

func TestSendRequestFromNone(t *testing.T) {
	svc := new(mocks.FriendServiceMock)
	svc.On("SendFriendRequest", mock.Anything, 2).Return(nil).Once()

	tracker := friends.NewTracker(svc)
	require.NoError(t, tracker.SendRequest(context.Background(), 2))

	conn := tracker.Status(2)
	assert.Equal(t, models.ConnectionPending, conn.Status)
	assert.Equal(t, models.DirectionSent, conn.Direction)
	svc.AssertExpectations(t)
}

func TestSendRequestTwiceIsRejectedLocally(t *testing.T) {
	svc := new(mocks.FriendServiceMock)
	svc.On("SendFriendRequest", mock.Anything, 2).Return(nil).Once()

	tracker := friends.NewTracker(svc)
	require.NoError(t, tracker.SendRequest(context.Background(), 2))

	var invalid *friends.ErrInvalidTransition
	err := tracker.SendRequest(context.Background(), 2)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.ConnectionPending, invalid.From)

	// Exactly one remote call happened.
	svc.AssertNumberOfCalls(t, "SendFriendRequest", 1)
}

func TestAcceptReceivedRequest(t *testing.T) {
	svc := new(mocks.FriendServiceMock)
	svc.On("ConnectionStatus", mock.Anything, 3).Return(models.Connection{
		ID: 40, UserID: 3, Status: models.ConnectionPending, Direction: models.DirectionReceived,
	}, nil).Once()
	svc.On("AcceptRequest", mock.Anything, 40).Return(nil).Once()

	tracker := friends.NewTracker(svc)
	_, err := tracker.Refresh(context.Background(), 3)
	require.NoError(t, err)

	require.NoError(t, tracker.Accept(context.Background(), 3))
	assert.Equal(t, models.ConnectionAccepted, tracker.Status(3).Status)
	svc.AssertExpectations(t)
}

func TestRejectReceivedRequest(t *testing.T) {
	svc := new(mocks.FriendServiceMock)
	svc.On("ConnectionStatus", mock.Anything, 3).Return(models.Connection{
		ID: 40, UserID: 3, Status: models.ConnectionPending, Direction: models.DirectionReceived,
	}, nil).Once()
	svc.On("RejectRequest", mock.Anything, 40).Return(nil).Once()

	tracker := friends.NewTracker(svc)
	_, err := tracker.Refresh(context.Background(), 3)
	require.NoError(t, err)

	require.NoError(t, tracker.Reject(context.Background(), 3))
	assert.Equal(t, models.ConnectionNone, tracker.Status(3).Status)
	svc.AssertExpectations(t)
}

func TestAcceptOwnSentRequestIsRejected(t *testing.T) {
	svc := new(mocks.FriendServiceMock)
	svc.On("SendFriendRequest", mock.Anything, 2).Return(nil).Once()

	tracker := friends.NewTracker(svc)
	require.NoError(t, tracker.SendRequest(context.Background(), 2))

	// The sender cannot accept their own pending request.
	var invalid *friends.ErrInvalidTransition
	require.ErrorAs(t, tracker.Accept(context.Background(), 2), &invalid)
	svc.AssertNotCalled(t, "AcceptRequest", mock.Anything, mock.Anything)
}

func TestRemoveAcceptedConnection(t *testing.T) {
	svc := new(mocks.FriendServiceMock)
	svc.On("ConnectionStatus", mock.Anything, 4).Return(models.Connection{
		ID: 51, UserID: 4, Status: models.ConnectionAccepted,
	}, nil).Once()
	svc.On("RemoveFriend", mock.Anything, 51).Return(nil).Once()

	tracker := friends.NewTracker(svc)
	_, err := tracker.Refresh(context.Background(), 4)
	require.NoError(t, err)

	require.NoError(t, tracker.Remove(context.Background(), 4))
	assert.Equal(t, models.ConnectionNone, tracker.Status(4).Status)

	// Removing again has nothing to remove.
	var invalid *friends.ErrInvalidTransition
	require.ErrorAs(t, tracker.Remove(context.Background(), 4), &invalid)
	svc.AssertNumberOfCalls(t, "RemoveFriend", 1)
}

func TestRemoteFailureLeavesStateUntouched(t *testing.T) {
	svc := new(mocks.FriendServiceMock)
	svc.On("SendFriendRequest", mock.Anything, 2).Return(assert.AnError).Once()

	tracker := friends.NewTracker(svc)
	require.Error(t, tracker.SendRequest(context.Background(), 2))
	assert.Equal(t, models.ConnectionNone, tracker.Status(2).Status)
}

func TestStatusDefaultsToNone(t *testing.T) {
	tracker := friends.NewTracker(new(mocks.FriendServiceMock))
	conn := tracker.Status(99)
	assert.Equal(t, models.ConnectionNone, conn.Status)
	assert.Equal(t, 99, conn.UserID)
}
