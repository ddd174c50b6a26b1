package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// envelope is the wire format for every outbound message.
type envelope struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// client wraps one websocket connection with a buffered outbound queue.
// Writes go through the queue and a single writePump goroutine, so a slow
// or dead connection never blocks a broadcast to the rest of the room.
type client struct {
	conn *websocket.Conn
	send chan envelope
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan envelope, 32),
	}
}

func (c *client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			break
		}
	}
	c.conn.Close()
}

// enqueue is non-blocking; it reports false when the client's queue is
// full and the message was dropped.
func (c *client) enqueue(e envelope) bool {
	select {
	case c.send <- e:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}
