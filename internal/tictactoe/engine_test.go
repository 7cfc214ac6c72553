package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

func twoPlayerRoom() *entity.Room {
	room := entity.NewRoom("room-1")
	room.AddPlayer(&entity.Player{ID: "a", Name: "alice"})
	room.AddPlayer(&entity.Player{ID: "b", Name: "bob"})

	return room
}

func TestCheckWin(t *testing.T) {
	t.Run("Detects every winning triple", func(t *testing.T) {
		for _, combo := range WinCombos {
			board := [9]string{}
			for _, i := range combo {
				board[i] = entity.MarkX
			}

			assert.True(t, CheckWin(board), "combo %v should win", combo)
		}
	})

	t.Run("No win on an empty board", func(t *testing.T) {
		assert.False(t, CheckWin([9]string{}))
	})

	t.Run("No win when a triple mixes marks", func(t *testing.T) {
		board := [9]string{"X", "X", "O", "", "", "", "", "", ""}

		assert.False(t, CheckWin(board))
	})

	t.Run("No win on a drawn board", func(t *testing.T) {
		board := [9]string{
			"X", "O", "X",
			"O", "X", "O",
			"O", "X", "O",
		}

		assert.False(t, CheckWin(board))
	})
}

func TestMakeMove_Preconditions(t *testing.T) {
	t.Run("Rejects a move against a room with one player", func(t *testing.T) {
		// Given: a room with a single waiting player
		room := entity.NewRoom("room-1")
		room.AddPlayer(&entity.Player{ID: "a"})

		// When: that player tries to move
		_, err := MakeMove(room, "a", 0)

		// Then: the move is refused and the board is untouched
		require.ErrorIs(t, err, apperror.ErrRoomNotReady)
		assert.Equal(t, [9]string{}, room.Board)
	})

	t.Run("Rejects a move from the non-current player", func(t *testing.T) {
		// Given: a full room where player 0 is current
		room := twoPlayerRoom()

		// When: player 1 tries to move out of turn
		_, err := MakeMove(room, "b", 0)

		// Then: it is a turn violation and nothing changes
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, [9]string{}, room.Board)
		assert.Equal(t, 0, room.Current)
	})

	t.Run("Rejects an out-of-range cell", func(t *testing.T) {
		room := twoPlayerRoom()

		_, err := MakeMove(room, "a", 9)

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, [9]string{}, room.Board)
	})

	t.Run("Rejects a negative cell", func(t *testing.T) {
		room := twoPlayerRoom()

		_, err := MakeMove(room, "a", -1)

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: cell 4 already holds a mark
		room := twoPlayerRoom()
		room.Board[4] = entity.MarkX
		room.Current = 1

		// When: the current player targets it
		_, err := MakeMove(room, "b", 4)

		// Then: the move is illegal and the cell keeps its mark
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, entity.MarkX, room.Board[4])
	})
}

func TestMakeMove_Alternation(t *testing.T) {
	t.Run("Current player index after N legal moves equals N mod 2", func(t *testing.T) {
		// Given: a full room and a move order with no terminal state
		room := twoPlayerRoom()
		players := []string{"a", "b"}
		cells := []int{0, 1, 4, 2, 3} // no triple completed

		// When/Then: each move flips the turn
		for n, cell := range cells {
			assert.Equal(t, n%2, room.Current)

			outcome, err := MakeMove(room, players[n%2], cell)
			require.NoError(t, err)
			require.Equal(t, OutcomeNextTurn, outcome)

			assert.Equal(t, (n+1)%2, room.Current)
		}
	})

	t.Run("A legal move sets exactly one previously-empty cell", func(t *testing.T) {
		room := twoPlayerRoom()

		_, err := MakeMove(room, "a", 4)
		require.NoError(t, err)

		marked := 0
		for _, cell := range room.Board {
			if cell != entity.EmptyCell {
				marked++
			}
		}
		assert.Equal(t, 1, marked)
		assert.Equal(t, entity.MarkX, room.Board[4])
	})
}

func TestMakeMove_Win(t *testing.T) {
	t.Run("Completing a triple wins the round and scores atomically", func(t *testing.T) {
		// Given: player 0 one move away from the top row
		room := twoPlayerRoom()
		room.Board = [9]string{
			"X", "X", "",
			"O", "O", "",
			"", "", "",
		}
		room.Current = 0

		// When: player 0 completes the row
		outcome, err := MakeMove(room, "a", 2)

		// Then: the outcome is a win, the point is already counted, and the
		// turn did not flip away from the winner
		require.NoError(t, err)
		assert.Equal(t, OutcomeWin, outcome)
		assert.Equal(t, 1, room.Players[0].Points)
		assert.Equal(t, 0, room.Players[1].Points)
		assert.Equal(t, 0, room.Current)
	})

	t.Run("Player 1 wins with O marks", func(t *testing.T) {
		room := twoPlayerRoom()
		room.Board = [9]string{
			"X", "X", "",
			"O", "O", "",
			"X", "", "",
		}
		room.Current = 1

		outcome, err := MakeMove(room, "b", 5)

		require.NoError(t, err)
		assert.Equal(t, OutcomeWin, outcome)
		assert.Equal(t, entity.MarkO, room.Board[5])
		assert.Equal(t, 1, room.Players[1].Points)
	})
}

func TestMakeMove_Draw(t *testing.T) {
	t.Run("Filling the last cell without a triple is a draw", func(t *testing.T) {
		// Given: one empty cell left and no winning line possible
		room := twoPlayerRoom()
		room.Board = [9]string{
			"X", "O", "X",
			"O", "X", "O",
			"O", "X", "",
		}
		room.Current = 1

		// When: the last cell is filled
		outcome, err := MakeMove(room, "b", 8)

		// Then: the round is drawn and no score changes
		require.NoError(t, err)
		assert.Equal(t, OutcomeDraw, outcome)
		assert.Equal(t, 0, room.Players[0].Points)
		assert.Equal(t, 0, room.Players[1].Points)
	})
}
