package ws

import (
	"chat-relay/domain"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 8192
)

// Client is one WebSocket connection. The read pump feeds inbound frames
// to the dispatcher; the write pump drains the send channel the hub
// enqueues on.
type Client struct {
	id   domain.ConnID
	conn *websocket.Conn
	send chan []byte
	log  *slog.Logger
}

func newClient(id domain.ConnID, conn *websocket.Conn, sendBufferSize int, log *slog.Logger) *Client {
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		log:  log,
	}
}

// readPump delivers each well-formed frame to dispatch and returns when
// the connection dies. Malformed JSON is dropped silently.
func (c *Client) readPump(dispatch func(Frame)) {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.log.Warn("Unexpected close", "conn", c.id, "err", err)
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.log.Debug("Invalid frame dropped", "conn", c.id, "err", err)
			continue
		}
		dispatch(frame)
	}
}

// writePump serializes all writes to the connection and keeps it alive
// with pings. Closing the send channel terminates the pump.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debug("Write failed", "conn", c.id, "err", err)
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
