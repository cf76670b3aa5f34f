package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// sendBuffer is how many frames a slow client may lag before frames are dropped.
const sendBuffer = 256

// ServeWs registers the connection and blocks until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, sendBuffer)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
