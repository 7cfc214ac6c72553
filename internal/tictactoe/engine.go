package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// Outcome of a legal move.
type Outcome int

const (
	// OutcomeNextTurn - the game goes on, the turn has flipped.
	OutcomeNextTurn Outcome = iota
	// OutcomeWin - the mover completed a triple; their points are already incremented.
	OutcomeWin
	// OutcomeDraw - all nine cells are filled with no triple satisfied.
	OutcomeDraw
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// MakeMove validates and applies a single move against the given room.
// It mutates only the room handle it is given: the mark is written, the
// winner's points incremented, and the current-player index flipped, all
// within this one call. Board resets after a win, draw, or illegal move
// are the caller's job, since they come with their own broadcasts.
func MakeMove(room *entity.Room, playerID string, cell int) (Outcome, error) {
	if !room.IsReady() {
		return 0, apperror.ErrRoomNotReady
	}

	if room.CurrentPlayer().ID != playerID {
		return 0, apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(room.Board) || room.Board[cell] != entity.EmptyCell {
		return 0, fmt.Errorf("%w: cell %d", apperror.ErrIllegalMove, cell)
	}

	room.Board[cell] = entity.Marks[room.Current]

	if CheckWin(room.Board) {
		room.CurrentPlayer().Points++
		return OutcomeWin, nil
	}

	if boardFull(room.Board) {
		return OutcomeDraw, nil
	}

	room.Current = 1 - room.Current

	return OutcomeNextTurn, nil
}

// CheckWin - true iff some row, column, or diagonal is fully occupied
// by identical non-empty marks.
func CheckWin(board [9]string) bool {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return true
		}
	}

	return false
}

func boardFull(board [9]string) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}
