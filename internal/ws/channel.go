// Package ws implements the push side of the chat transport: one persistent
// websocket per open group conversation.
package ws

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ionutT77/PourPal/internal/models"
	"github.com/ionutT77/PourPal/internal/observability"
)

// GroupChatURL builds the push channel URL for a hangout.
func GroupChatURL(base string, hangoutID int) string {
	return fmt.Sprintf("%s/ws/chat/%d/", strings.TrimRight(base, "/"), hangoutID)
}

// Channel is an open push channel. Inbound events arrive on Events; the
// channel closes it when the connection dies or Close is called.
type Channel struct {
	conn   *websocket.Conn
	events chan models.ChatEvent
	connID string

	closeOnce    sync.Once
	disconnected atomic.Bool

	mu      sync.Mutex
	lastErr error
}

// Dial opens a push channel. The session cookie travels in the handshake
// headers supplied by the caller.
func Dial(ctx context.Context, rawURL string, header http.Header) (*Channel, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, rawURL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		observability.IncWSEvent("ws_dial_error")
		return nil, fmt.Errorf("dial %s: %w", rawURL, err)
	}

	ch := &Channel{
		conn:   conn,
		events: make(chan models.ChatEvent, 16),
		connID: newConnID(),
	}
	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	log.Printf("push channel open conn_id=%s url=%s", ch.connID, rawURL)

	go ch.readLoop()
	return ch, nil
}

// Events returns the inbound event stream. Closed exactly once, when the
// connection ends for any reason.
func (ch *Channel) Events() <-chan models.ChatEvent {
	return ch.events
}

// Send writes one outgoing message. The server echoes it back as an inbound
// event; no local append happens here.
func (ch *Channel) Send(text string) error {
	if ch.disconnected.Load() {
		return fmt.Errorf("push channel closed: %w", ch.Err())
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if err := ch.conn.WriteJSON(map[string]string{"message": text}); err != nil {
		observability.IncWSEvent("ws_write_error")
		return fmt.Errorf("write message: %w", err)
	}
	observability.IncWSEvent("ws_send")
	return nil
}

// Close tears the channel down. Safe to call more than once and from any
// exit path; the read loop finishes the cleanup.
func (ch *Channel) Close() error {
	ch.closeOnce.Do(func() {
		ch.mu.Lock()
		_ = ch.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		ch.mu.Unlock()
		_ = ch.conn.Close()
	})
	return nil
}

// Disconnected reports whether the channel is no longer delivering events.
func (ch *Channel) Disconnected() bool {
	return ch.disconnected.Load()
}

// Err returns the error that ended the connection, if any.
func (ch *Channel) Err() error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.lastErr
}

func (ch *Channel) readLoop() {
	defer func() {
		ch.disconnected.Store(true)
		close(ch.events)
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		_ = ch.conn.Close()
	}()

	for {
		_, payload, err := ch.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
				log.Printf("push channel error conn_id=%s: %v", ch.connID, err)
			}
			ch.mu.Lock()
			ch.lastErr = err
			ch.mu.Unlock()
			return
		}

		var event models.ChatEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Printf("push channel bad payload conn_id=%s: %v", ch.connID, err)
			continue
		}
		observability.IncWSEvent("ws_message")
		ch.events <- event
	}
}

func newConnID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(buf)
}
