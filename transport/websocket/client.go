package websocket

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 32
)

// client is one connected player. The send channel decouples the room
// manager's critical section from this connection's write speed.
type client struct {
	id   string
	conn *websocket.Conn
	send chan Message
}

// readLoop pumps intents from the connection into the server's handlers.
// When it exits, for whatever reason, the connection is treated as a
// disconnect: the client leaves the hub and its player leaves their room.
func (that *client) readLoop(ctx context.Context, server *Server) {
	log := server.logger.With("method", "readLoop", "playerID", that.id)

	defer func() {
		server.hub.remove(that)
		_ = that.conn.Close()

		if err := server.rooms.RemovePlayer(ctx, that.id); err != nil {
			log.Error("failed to remove player", "error", err)
		}
	}()

	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := that.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("unexpected close", "error", err)
			}
			return
		}

		server.dispatch(ctx, that, &msg)
	}
}

// writeLoop pumps events from the send channel onto the connection and
// keeps it alive with pings. A closed send channel means the hub dropped
// this client.
func (that *client) writeLoop(logger *slog.Logger) {
	log := logger.With("method", "writeLoop", "playerID", that.id)

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteJSON(msg); err != nil {
				log.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
