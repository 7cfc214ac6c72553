package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/internal/repository"
	"github.com/rocketscienceinc/gameroom-backend/internal/tictactoe"
)

// Actions emitted to clients.
const (
	ActionRoomCreated = "roomCreated"
	ActionRoomFull    = "roomFull"
	ActionMessage     = "message"
	ActionBoard       = "board"
	ActionScore       = "score"
	ActionTurn        = "turn"
)

type roomRepo interface {
	NextID(ctx context.Context) (string, error)
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	DeleteByID(ctx context.Context, id string) error
}

// notifier delivers a single event to a single connected player.
// Room-wide broadcasts are loops over the room's player list.
type notifier interface {
	Send(playerID, action string, payload any)
}

// RoomManager owns every room-state transition. One mutex serializes all
// intents: each one, including its broadcasts, completes before the next
// begins, so no room is ever mutated concurrently.
type RoomManager struct {
	logger *slog.Logger
	mu     sync.Mutex

	roomRepo   roomRepo
	playerRepo playerRepo
	notifier   notifier
}

func NewRoomManager(logger *slog.Logger, roomRepo roomRepo, playerRepo playerRepo, notifier notifier) *RoomManager {
	return &RoomManager{
		logger: logger,

		roomRepo:   roomRepo,
		playerRepo: playerRepo,
		notifier:   notifier,
	}
}

// CreateRoom - allocates a fresh room with the caller as player 0.
func (that *RoomManager) CreateRoom(ctx context.Context, playerID, username string) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID, err := that.roomRepo.NextID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to allocate room id: %w", err)
	}

	room := entity.NewRoom(roomID)
	player := &entity.Player{ID: playerID, Name: username}
	room.AddPlayer(player)

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return "", fmt.Errorf("failed to save player: %w", err)
	}

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return "", fmt.Errorf("failed to save room: %w", err)
	}

	that.notifier.Send(playerID, ActionRoomCreated, roomID)

	that.logger.Info("room created", "roomID", roomID, "playerID", playerID)

	return roomID, nil
}

// JoinRoom - registers the caller as the next player of an existing room.
// A full or unknown room is reported to the joiner only; joining the
// second seat starts the game with an initial board and turn broadcast.
func (that *RoomManager) JoinRoom(ctx context.Context, roomID, playerID, username string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.roomRepo.GetByID(ctx, roomID)
	if errors.Is(err, repository.ErrRoomNotFound) {
		that.notifier.Send(playerID, ActionMessage, fmt.Sprintf("Room %s does not exist.", roomID))
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.IsFull() {
		that.notifier.Send(playerID, ActionRoomFull, fmt.Sprintf("Room %s is full.", roomID))
		return nil
	}

	player := &entity.Player{ID: playerID, Name: username}
	room.AddPlayer(player)

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	that.notifier.Send(playerID, ActionMessage, fmt.Sprintf("Welcome %s to room %s", username, roomID))

	if !room.IsReady() {
		that.notifier.Send(playerID, ActionMessage, fmt.Sprintf("Waiting for another player to join room %s...", roomID))
		return nil
	}

	that.broadcast(room, ActionMessage, fmt.Sprintf("Both players connected: %s and %s. Let the game begin!",
		room.Players[0].Name, room.Players[1].Name))
	that.broadcast(room, ActionBoard, room.Cells())
	that.broadcast(room, ActionTurn, turnLine(room))

	that.logger.Info("player joined room", "roomID", roomID, "playerID", playerID)

	return nil
}

// MakeTurn - attempts a move at the given cell and broadcasts the result.
// A move against a room that is not ready vanishes without feedback; a
// turn violation is reported to the submitter only; an illegal cell
// penalizes the whole room with a round restart.
func (that *RoomManager) MakeTurn(ctx context.Context, roomID, playerID string, cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("roomID", roomID, "playerID", playerID)

	room, err := that.roomRepo.GetByID(ctx, roomID)
	if errors.Is(err, repository.ErrRoomNotFound) {
		log.Debug("move against unknown room dropped")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	outcome, err := tictactoe.MakeMove(room, playerID, cell)

	switch {
	case errors.Is(err, apperror.ErrRoomNotReady):
		log.Debug("move against incomplete room dropped")
		return nil

	case errors.Is(err, apperror.ErrNotYourTurn):
		that.notifier.Send(playerID, ActionMessage, "It's not your turn!")
		return nil

	case errors.Is(err, apperror.ErrIllegalMove):
		that.broadcast(room, ActionMessage, "Invalid move. The game will restart.")
		that.resetRound(room)
		if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
			return fmt.Errorf("failed to save room: %w", err)
		}
		return nil

	case err != nil:
		return fmt.Errorf("failed to make move: %w", err)
	}

	that.broadcast(room, ActionBoard, room.Cells())

	switch outcome {
	case tictactoe.OutcomeWin:
		winner := room.CurrentPlayer()
		that.broadcast(room, ActionMessage, fmt.Sprintf("%s wins!", winner.Name))
		that.broadcast(room, ActionScore, room.Score())

		// keep the standalone player record in step with the room copy
		if err = that.playerRepo.CreateOrUpdate(ctx, winner); err != nil {
			return fmt.Errorf("failed to save player: %w", err)
		}

		that.resetRound(room)

	case tictactoe.OutcomeDraw:
		that.broadcast(room, ActionMessage, "It's a draw!")
		that.resetRound(room)

	case tictactoe.OutcomeNextTurn:
		that.broadcast(room, ActionTurn, turnLine(room))
	}

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	return nil
}

// RemovePlayer - handles a connection-level disconnect. The room is
// deleted when its last player leaves; a surviving player gets a waiting
// notice and a cleared board while keeping their points.
func (that *RoomManager) RemovePlayer(ctx context.Context, playerID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("playerID", playerID)

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		// connections that never entered a room have nothing to clean up
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get player: %w", err)
	}

	if err = that.playerRepo.DeleteByID(ctx, playerID); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	room, err := that.roomRepo.GetByID(ctx, player.RoomID)
	if errors.Is(err, repository.ErrRoomNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if !room.RemovePlayer(playerID) {
		return nil
	}

	if len(room.Players) == 0 {
		if err = that.roomRepo.DeleteByID(ctx, room.ID); err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}

		log.Info("room deleted", "roomID", room.ID)

		return nil
	}

	that.broadcast(room, ActionMessage, "Player disconnected. Waiting for a new player to join...")
	that.resetRound(room)

	if err = that.roomRepo.CreateOrUpdate(ctx, room); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	log.Info("player left room", "roomID", room.ID)

	return nil
}

// resetRound - clears the board and hands the turn back to player 0.
// With both seats still taken the fresh round is announced immediately;
// a lone player hears nothing until an opponent arrives.
func (that *RoomManager) resetRound(room *entity.Room) {
	room.ResetRound()

	if !room.IsReady() {
		return
	}

	that.broadcast(room, ActionBoard, room.Cells())
	that.broadcast(room, ActionTurn, turnLine(room))
}

func (that *RoomManager) broadcast(room *entity.Room, action string, payload any) {
	for _, player := range room.Players {
		that.notifier.Send(player.ID, action, payload)
	}
}

func turnLine(room *entity.Room) string {
	return fmt.Sprintf("%s's turn", room.CurrentPlayer().Name)
}
