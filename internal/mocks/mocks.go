package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ionutT77/PourPal/internal/friends"
	"github.com/ionutT77/PourPal/internal/models"
	chatsync "github.com/ionutT77/PourPal/internal/sync"
)

type GroupChatServiceMock struct {
	mock.Mock
}

func (m *GroupChatServiceMock) FetchMessages(ctx context.Context, hangoutID int) ([]models.Message, error) {
	args := m.Called(ctx, hangoutID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *GroupChatServiceMock) PostMessage(ctx context.Context, hangoutID int, text string) error {
	args := m.Called(ctx, hangoutID, text)
	return args.Error(0)
}

type PrivateChatServiceMock struct {
	mock.Mock
}

func (m *PrivateChatServiceMock) FetchConversation(ctx context.Context, peerID int) ([]models.Message, error) {
	args := m.Called(ctx, peerID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *PrivateChatServiceMock) SendPrivate(ctx context.Context, peerID int, text string) error {
	args := m.Called(ctx, peerID, text)
	return args.Error(0)
}

type ConversationServiceMock struct {
	mock.Mock
}

func (m *ConversationServiceMock) ListConversations(ctx context.Context) ([]models.ConversationSummary, error) {
	args := m.Called(ctx)
	var summaries []models.ConversationSummary
	if val := args.Get(0); val != nil {
		summaries = val.([]models.ConversationSummary)
	}
	return summaries, args.Error(1)
}

func (m *ConversationServiceMock) MarkConversationRead(ctx context.Context, peerID int) error {
	args := m.Called(ctx, peerID)
	return args.Error(0)
}

type FriendServiceMock struct {
	mock.Mock
}

func (m *FriendServiceMock) ConnectionStatus(ctx context.Context, userID int) (models.Connection, error) {
	args := m.Called(ctx, userID)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *FriendServiceMock) SendFriendRequest(ctx context.Context, userID int) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *FriendServiceMock) AcceptRequest(ctx context.Context, connectionID int) error {
	args := m.Called(ctx, connectionID)
	return args.Error(0)
}

func (m *FriendServiceMock) RejectRequest(ctx context.Context, connectionID int) error {
	args := m.Called(ctx, connectionID)
	return args.Error(0)
}

func (m *FriendServiceMock) RemoveFriend(ctx context.Context, connectionID int) error {
	args := m.Called(ctx, connectionID)
	return args.Error(0)
}

type TransportMock struct {
	mock.Mock
	// EventStream is returned by Events when set, so push behavior can be
	// driven from tests without a real websocket.
	EventStream chan models.Message
}

func (m *TransportMock) Load(ctx context.Context) ([]models.Message, error) {
	args := m.Called(ctx)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *TransportMock) Send(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func (m *TransportMock) Events() <-chan models.Message {
	if m.EventStream != nil {
		return m.EventStream
	}
	return nil
}

func (m *TransportMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ chatsync.GroupChatService = (*GroupChatServiceMock)(nil)
var _ chatsync.PrivateChatService = (*PrivateChatServiceMock)(nil)
var _ chatsync.ConversationService = (*ConversationServiceMock)(nil)
var _ chatsync.Transport = (*TransportMock)(nil)
var _ friends.Service = (*FriendServiceMock)(nil)
