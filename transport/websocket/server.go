package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// rooms is the server-side view of the room manager.
type rooms interface {
	CreateRoom(ctx context.Context, playerID, username string) (string, error)
	JoinRoom(ctx context.Context, roomID, playerID, username string) error
	MakeTurn(ctx context.Context, roomID, playerID string, cell int) error
	RemovePlayer(ctx context.Context, playerID string) error
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type Server struct {
	logger *slog.Logger
	rooms  rooms
	hub    *Hub

	handlers map[string]func(ctx context.Context, c *client, payload json.RawMessage) error
}

func New(logger *slog.Logger, hub *Hub, rooms rooms) *Server {
	server := &Server{
		logger: logger,
		rooms:  rooms,
		hub:    hub,

		handlers: make(map[string]func(context.Context, *client, json.RawMessage) error),
	}

	server.handlers["createRoom"] = server.handleCreateRoom
	server.handlers["joinRoom"] = server.handleJoinRoom
	server.handlers["move"] = server.handleMove

	return server
}

// Handler - the HTTP handler serving the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	return mux
}

// Start - starts the WebSocket server and blocks until it stops.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the request and runs the connection's pumps.
// Every connection gets a fresh opaque id; it doubles as the player id for
// the lifetime of the socket.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Message, sendBufferSize),
	}

	that.hub.add(c)

	log.Info("player connected", "playerID", c.id)

	go c.writeLoop(that.logger)
	c.readLoop(ctx, that)

	log.Info("player disconnected", "playerID", c.id)
}

func (that *Server) dispatch(ctx context.Context, c *client, msg *Message) {
	log := that.logger.With("method", "dispatch", "playerID", c.id, "action", msg.Action)

	handler, ok := that.handlers[msg.Action]
	if !ok {
		log.Warn("unknown action")
		return
	}

	if err := handler(ctx, c, msg.Payload); err != nil {
		log.Error("failed to handle message", "error", err)
	}
}
