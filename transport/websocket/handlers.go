package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gameroom-backend/internal/usecase"
)

func (that *Server) handleCreateRoom(ctx context.Context, c *client, payload json.RawMessage) error {
	var req createRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		that.hub.Send(c.id, usecase.ActionMessage, "Invalid createRoom payload.")
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if _, err := that.rooms.CreateRoom(ctx, c.id, req.Username); err != nil {
		that.hub.Send(c.id, usecase.ActionMessage, "Failed to create room.")
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, c *client, payload json.RawMessage) error {
	var req joinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		that.hub.Send(c.id, usecase.ActionMessage, "Invalid joinRoom payload.")
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.rooms.JoinRoom(ctx, req.RoomID, c.id, req.Username); err != nil {
		that.hub.Send(c.id, usecase.ActionMessage, "Failed to join room.")
		return fmt.Errorf("failed to join room: %w", err)
	}

	return nil
}

func (that *Server) handleMove(ctx context.Context, c *client, payload json.RawMessage) error {
	var req movePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		that.hub.Send(c.id, usecase.ActionMessage, "Invalid move payload.")
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.rooms.MakeTurn(ctx, req.RoomID, c.id, req.Index); err != nil {
		that.hub.Send(c.id, usecase.ActionMessage, "Failed to make move.")
		return fmt.Errorf("failed to make move: %w", err)
	}

	return nil
}
