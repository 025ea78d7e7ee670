package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeTimeout   = 10 * time.Second
	idleTimeout    = 60 * time.Second
	heartbeatEvery = idleTimeout * 9 / 10
	inboundLimit   = 512
	outboxCapacity = 256
)

// Client is one connected device of a user. The activity stream is push-only,
// so inbound frames are read just to notice pongs and disconnects.
type Client struct {
	UserID uuid.UUID

	// Send holds encoded activity frames. Only the hub closes it.
	Send chan []byte

	hub  *Hub
	conn *websocket.Conn
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, outboxCapacity), hub: hub, conn: conn}
}

// Serve registers the client and blocks until the peer goes away.
func Serve(hub *Hub, conn *websocket.Conn, userID uuid.UUID) {
	c := NewClient(hub, conn, userID)
	hub.Register(c)

	go c.forward()
	c.watch()
}

// watch returns once the connection is dead, then detaches from the hub.
func (c *Client) watch() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	extend := func(string) error { return c.conn.SetReadDeadline(time.Now().Add(idleTimeout)) }
	c.conn.SetReadLimit(inboundLimit)
	extend("")
	c.conn.SetPongHandler(extend)

	for {
		_, _, err := c.conn.ReadMessage()
		if err == nil {
			continue
		}
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
			c.hub.logger.Warn("Hub", "Activity stream closed unexpectedly", map[string]interface{}{"user_id": c.UserID, "error": err.Error()})
		}
		return
	}
}

// forward drains Send onto the socket and keeps the link alive with pings.
func (c *Client) forward() {
	heartbeat := time.NewTicker(heartbeatEvery)
	defer heartbeat.Stop()
	defer c.conn.Close()

	write := func(kind int, payload []byte) error {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		return c.conn.WriteMessage(kind, payload)
	}

	for {
		select {
		case frame, open := <-c.Send:
			if !open {
				write(websocket.CloseMessage, nil)
				return
			}
			if err := write(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
