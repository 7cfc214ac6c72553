package entity

import "fmt"

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""

	// MaxPlayers - a room never holds more than two players.
	MaxPlayers = 2
)

// Marks - player index to board mark, creator always plays X.
var Marks = [MaxPlayers]string{MarkX, MarkO}

// Room is a single two-player game session. Players are ordered: index 0
// is the creator (or the survivor after a disconnect), index 1 the joiner.
// Current indexes into Players and is meaningful only when the room is full.
type Room struct {
	ID      string    `json:"id"`
	Players []*Player `json:"players"`
	Board   [9]string `json:"board"`
	Current int       `json:"current"`
}

func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		Players: []*Player{},
	}
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

// IsReady - a game can only be played with both seats taken.
func (that *Room) IsReady() bool {
	return len(that.Players) == MaxPlayers
}

func (that *Room) AddPlayer(player *Player) {
	player.RoomID = that.ID
	that.Players = append(that.Players, player)
}

// RemovePlayer - removes the player with the given ID, preserving the
// order of the remaining players. Returns false if the player is not here.
func (that *Room) RemovePlayer(playerID string) bool {
	for i, player := range that.Players {
		if player.ID == playerID {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return true
		}
	}

	return false
}

// PlayerIndex - seat index of the given player, or -1.
func (that *Room) PlayerIndex(playerID string) int {
	for i, player := range that.Players {
		if player.ID == playerID {
			return i
		}
	}

	return -1
}

func (that *Room) CurrentPlayer() *Player {
	return that.Players[that.Current]
}

// ResetRound - clears the board and hands the turn back to player 0.
// Players and points are untouched.
func (that *Room) ResetRound() {
	that.Board = [9]string{}
	that.Current = 0
}

// Cells - the board as sent on the wire, with a blank for empty cells.
func (that *Room) Cells() [9]string {
	var cells [9]string
	for i, cell := range that.Board {
		if cell == EmptyCell {
			cells[i] = " "
		} else {
			cells[i] = cell
		}
	}

	return cells
}

// Score - the running tally of both players' wins.
func (that *Room) Score() string {
	return fmt.Sprintf("Current Score: %s: %d - %s: %d",
		that.Players[0].Name, that.Players[0].Points,
		that.Players[1].Name, that.Players[1].Points)
}
