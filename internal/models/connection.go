package models

// ConnectionStatus is the friendship state between two users.
type ConnectionStatus string

// Valid connection statuses.
const (
	ConnectionNone     ConnectionStatus = "none"
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
)

// ConnectionDirection tells which side of a pending request the viewer is on.
type ConnectionDirection string

// Valid directions for a pending request.
const (
	DirectionSent     ConnectionDirection = "sent"
	DirectionReceived ConnectionDirection = "received"
)

// Connection describes the friendship record between the viewing user and
// another user.
type Connection struct {
	ID        int                 `json:"connection_id,omitempty"`
	UserID    int                 `json:"user_id"`
	Status    ConnectionStatus    `json:"status"`
	Direction ConnectionDirection `json:"direction,omitempty"`
}
