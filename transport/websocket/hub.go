package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub tracks live connections by player id and is the delivery side of the
// room manager's notifier. Sends never block the caller: a client whose
// send buffer is full loses the event instead of stalling the game.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
	}
}

func (that *Hub) add(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

func (that *Hub) remove(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.clients[c.id] == c {
		delete(that.clients, c.id)
		close(c.send)
	}
}

// Send - delivers one event to one player. Unknown players are skipped;
// disconnects race with broadcasts and that is fine.
func (that *Hub) Send(playerID, action string, payload any) {
	log := that.logger.With("method", "Send")

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal payload", "action", action, "error", err)
		return
	}

	// the lock is held across the send so remove cannot close the channel
	// between the lookup and the select
	that.mu.RLock()
	defer that.mu.RUnlock()

	c, ok := that.clients[playerID]
	if !ok {
		log.Debug("connection not found for player", "playerID", playerID)
		return
	}

	select {
	case c.send <- Message{Action: action, Payload: raw}:
	default:
		log.Warn("send buffer full, dropping event", "playerID", playerID, "action", action)
	}
}
