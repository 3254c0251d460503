// Package friends tracks connection (friendship) records and guards their
// state machine on the client side: none -> pending -> accepted or none.
package friends

import (
	"context"
	"fmt"
	"sync"

	"github.com/ionutT77/PourPal/internal/models"
)

// ErrInvalidTransition rejects an action that does not apply to the
// connection's current state. No remote call is made.
type ErrInvalidTransition struct {
	From   models.ConnectionStatus
	Action string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s a connection in state %q", e.Action, e.From)
}

// Service is the API surface the tracker consumes.
type Service interface {
	ConnectionStatus(ctx context.Context, userID int) (models.Connection, error)
	SendFriendRequest(ctx context.Context, userID int) error
	AcceptRequest(ctx context.Context, connectionID int) error
	RejectRequest(ctx context.Context, connectionID int) error
	RemoveFriend(ctx context.Context, connectionID int) error
}

// Tracker caches the connection record per user and validates transitions
// before they hit the network.
type Tracker struct {
	svc Service

	mu    sync.Mutex
	state map[int]models.Connection
}

// NewTracker builds a tracker over the friendship API.
func NewTracker(svc Service) *Tracker {
	return &Tracker{svc: svc, state: make(map[int]models.Connection)}
}

// Refresh fetches the connection record for userID.
func (t *Tracker) Refresh(ctx context.Context, userID int) (models.Connection, error) {
	conn, err := t.svc.ConnectionStatus(ctx, userID)
	if err != nil {
		return models.Connection{}, err
	}
	t.set(conn)
	return conn, nil
}

// SendRequest opens a pending request towards userID. Valid only from none.
func (t *Tracker) SendRequest(ctx context.Context, userID int) error {
	conn := t.get(userID)
	if conn.Status != models.ConnectionNone {
		return &ErrInvalidTransition{From: conn.Status, Action: "send a request to"}
	}
	if err := t.svc.SendFriendRequest(ctx, userID); err != nil {
		return err
	}
	t.set(models.Connection{
		UserID:    userID,
		Status:    models.ConnectionPending,
		Direction: models.DirectionSent,
	})
	return nil
}

// Accept confirms a pending request the peer sent to us.
func (t *Tracker) Accept(ctx context.Context, userID int) error {
	conn := t.get(userID)
	if conn.Status != models.ConnectionPending || conn.Direction != models.DirectionReceived {
		return &ErrInvalidTransition{From: conn.Status, Action: "accept"}
	}
	if err := t.svc.AcceptRequest(ctx, conn.ID); err != nil {
		return err
	}
	conn.Status = models.ConnectionAccepted
	conn.Direction = ""
	t.set(conn)
	return nil
}

// Reject dismisses a pending request the peer sent to us.
func (t *Tracker) Reject(ctx context.Context, userID int) error {
	conn := t.get(userID)
	if conn.Status != models.ConnectionPending || conn.Direction != models.DirectionReceived {
		return &ErrInvalidTransition{From: conn.Status, Action: "reject"}
	}
	if err := t.svc.RejectRequest(ctx, conn.ID); err != nil {
		return err
	}
	t.set(models.Connection{UserID: userID, Status: models.ConnectionNone})
	return nil
}

// Remove deletes an accepted connection.
func (t *Tracker) Remove(ctx context.Context, userID int) error {
	conn := t.get(userID)
	if conn.Status != models.ConnectionAccepted {
		return &ErrInvalidTransition{From: conn.Status, Action: "remove"}
	}
	if err := t.svc.RemoveFriend(ctx, conn.ID); err != nil {
		return err
	}
	t.set(models.Connection{UserID: userID, Status: models.ConnectionNone})
	return nil
}

// Status returns the cached connection record for userID, ConnectionNone
// when nothing is known yet.
func (t *Tracker) Status(userID int) models.Connection {
	return t.get(userID)
}

func (t *Tracker) get(userID int) models.Connection {
	t.mu.Lock()
	defer t.mu.Unlock()
	if conn, ok := t.state[userID]; ok {
		return conn
	}
	return models.Connection{UserID: userID, Status: models.ConnectionNone}
}

func (t *Tracker) set(conn models.Connection) {
	t.mu.Lock()
	t.state[conn.UserID] = conn
	t.mu.Unlock()
}
