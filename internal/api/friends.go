package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ionutT77/PourPal/internal/models"
)

// ConnectionStatus returns the friendship record between the caller and
// userID, ConnectionNone when there is none.
func (c *Client) ConnectionStatus(ctx context.Context, userID int) (models.Connection, error) {
	var conn models.Connection
	err := c.do(ctx, "connections.status", http.MethodGet, fmt.Sprintf("/users/connections/status/%d/", userID), nil, nil, &conn)
	if err != nil {
		return models.Connection{}, err
	}
	conn.UserID = userID
	if conn.Status == "" {
		conn.Status = models.ConnectionNone
	}
	return conn, nil
}

// SendFriendRequest opens a pending connection towards userID. Duplicate
// requests surface as a conflict Error.
func (c *Client) SendFriendRequest(ctx context.Context, userID int) error {
	return c.do(ctx, "connections.send", http.MethodPost, fmt.Sprintf("/users/connections/send/%d/", userID), nil, nil, nil)
}

// AcceptRequest accepts a pending connection addressed to the caller.
func (c *Client) AcceptRequest(ctx context.Context, connectionID int) error {
	return c.do(ctx, "connections.accept", http.MethodPost, fmt.Sprintf("/users/connections/%d/accept/", connectionID), nil, nil, nil)
}

// RejectRequest dismisses a pending connection addressed to the caller.
func (c *Client) RejectRequest(ctx context.Context, connectionID int) error {
	return c.do(ctx, "connections.reject", http.MethodPost, fmt.Sprintf("/users/connections/%d/reject/", connectionID), nil, nil, nil)
}

// RemoveFriend deletes an accepted connection.
func (c *Client) RemoveFriend(ctx context.Context, connectionID int) error {
	return c.do(ctx, "connections.remove", http.MethodDelete, fmt.Sprintf("/users/connections/%d/", connectionID), nil, nil, nil)
}

// ListFriends returns the caller's accepted connections.
func (c *Client) ListFriends(ctx context.Context) ([]models.User, error) {
	var friends []models.User
	err := c.do(ctx, "connections.friends", http.MethodGet, "/users/connections/friends/", nil, nil, &friends)
	return friends, err
}

// PendingRequest is one incoming friend request awaiting a decision.
type PendingRequest struct {
	ConnectionID int         `json:"connection_id"`
	From         models.User `json:"from_user"`
}

// ListPending returns friend requests addressed to the caller.
func (c *Client) ListPending(ctx context.Context) ([]PendingRequest, error) {
	var pending []PendingRequest
	err := c.do(ctx, "connections.pending", http.MethodGet, "/users/connections/pending/", nil, nil, &pending)
	return pending, err
}
