package ws

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/enftlab/enft-backend/internal/lib/sl"
	"github.com/enftlab/enft-backend/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// incomingMessage — формат сообщения, присылаемого клиентом.
type incomingMessage struct {
	Text string `json:"text"`
}

// Client — одно websocket-соединение участника комнаты.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	roomID string
	sender string
	send   chan models.ChatMessage
}

// NewClient создает клиента и отправляет ему историю комнаты.
func NewClient(hub *Hub, conn *websocket.Conn, roomID, sender string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		roomID: roomID,
		sender: sender,
		send:   make(chan models.ChatMessage, 32),
	}
}

// Serve регистрирует клиента в хабе, отправляет историю комнаты
// и запускает циклы чтения и записи. Блокируется до разрыва соединения.
func (c *Client) Serve(ctx context.Context) {
	c.hub.register <- c

	history, err := c.hub.store.History(ctx, c.roomID)
	if err != nil {
		c.hub.log.Error("failed to load chat history", sl.Err(err))
	} else {
		for _, msg := range history {
			if err := c.conn.WriteJSON(msg); err != nil {
				break
			}
		}
	}

	go c.writePump()
	c.readPump()
}

// readPump читает сообщения клиента и передает их хабу.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in incomingMessage
		if err := c.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Error("unexpected websocket close", sl.Err(err))
			}
			return
		}
		if in.Text == "" {
			continue
		}
		c.hub.broadcast <- inbound{
			client: c,
			msg: models.ChatMessage{
				RoomID: c.roomID,
				Sender: c.sender,
				Text:   in.Text,
				SentAt: time.Now().UTC(),
			},
		}
	}
}

// writePump отправляет клиенту сообщения комнаты и ping-и.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
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
