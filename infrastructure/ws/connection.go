package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/gorilla/websocket"
	"livechat/auth"
	"livechat/domain"
	"livechat/errors"
	"log/slog"
	"sync"
	"time"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 16 * 1024
)

// connection is one live websocket. It is the EventSink the notifier pushes to:
// Consume only enqueues, the write pump owns the socket writes.
type connection struct {
	log       *slog.Logger
	conn      *websocket.Conn
	principal auth.Principal
	socketID  string
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	pongWait  time.Duration
}

func newConnection(log *slog.Logger, conn *websocket.Conn, principal auth.Principal, socketID string,
	bufferSize int, pongWait time.Duration) *connection {
	return &connection{
		log:       log.With("user_id", principal.UserID, "socket_id", socketID),
		conn:      conn,
		principal: principal,
		socketID:  socketID,
		send:      make(chan []byte, bufferSize),
		done:      make(chan struct{}),
		pongWait:  pongWait,
	}
}

// Consume implements contract.EventSink.
func (c *connection) Consume(ctx context.Context, n domain.Notification) error {
	data, err := json.Marshal(n.Payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, Frame{Type: FrameType(n.Type), Data: data, At: n.At})
}

func (c *connection) enqueue(ctx context.Context, frame Frame) error {
	bytes, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return fmt.Errorf("%w: socket %s closed", errors.ErrNotConnected, c.socketID)
	default:
	}
	select {
	case c.send <- bytes:
		return nil
	case <-c.done:
		return fmt.Errorf("%w: socket %s closed", errors.ErrNotConnected, c.socketID)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *connection) reply(id string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.fail(id, err)
		return
	}
	if err := c.enqueue(context.Background(), Frame{Type: FrameAck, ID: id, Data: data}); err != nil {
		c.log.Debug("Reply dropped", "request_id", id, "error", err)
	}
}

func (c *connection) fail(id string, err error) {
	c.log.Debug("Request failed", "request_id", id, "error", err)
	if err := c.enqueue(context.Background(), Frame{Type: FrameError, ID: id, Error: ErrorCode(err)}); err != nil {
		c.log.Debug("Error reply dropped", "request_id", id, "error", err)
	}
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// writePump sends queued frames and pings until the connection closes.
func (c *connection) writePump() {
	ticker := time.NewTicker(c.pongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Warn("Write error", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
