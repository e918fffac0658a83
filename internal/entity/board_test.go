package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_Winner(t *testing.T) {
	t.Run("Returns PlayerX when X completes the top row", func(t *testing.T) {
		// Given: a board where X has the top row
		board := Board{
			PlayerX, PlayerX, PlayerX,
			PlayerO, PlayerO, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		}

		// When: looking for a winner
		winner := board.Winner()

		// Then: X should win
		assert.Equal(t, PlayerX, winner)
	})

	t.Run("Returns PlayerO for a column", func(t *testing.T) {
		// Given: a board where O has the middle column
		board := Board{
			PlayerX, PlayerO, PlayerX,
			EmptyCell, PlayerO, EmptyCell,
			PlayerX, PlayerO, EmptyCell,
		}

		// When: looking for a winner
		winner := board.Winner()

		// Then: O should win
		assert.Equal(t, PlayerO, winner)
	})

	t.Run("Returns PlayerX for the anti-diagonal", func(t *testing.T) {
		// Given: a board where X has cells 2, 4 and 6
		board := Board{
			PlayerO, PlayerO, PlayerX,
			EmptyCell, PlayerX, EmptyCell,
			PlayerX, EmptyCell, EmptyCell,
		}

		// When: looking for a winner
		winner := board.Winner()

		// Then: X should win
		assert.Equal(t, PlayerX, winner)
	})

	t.Run("Every line is detected", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board with only this line filled by O
			var board Board
			for _, cell := range combo {
				board[cell] = PlayerO
			}

			// Then: O should win
			assert.Equal(t, PlayerO, board.Winner(), "line %v", combo)
		}
	})

	t.Run("Returns EmptyCell for an empty board", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// Then: nobody wins
		assert.Equal(t, EmptyCell, board.Winner())
	})

	t.Run("Returns EmptyCell for a full board without a line", func(t *testing.T) {
		// Given: a full board with no completed line
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerO,
		}

		// Then: nobody wins, a full board is not reported as a tie
		assert.Equal(t, EmptyCell, board.Winner())
	})
}

func TestBoard_Strings(t *testing.T) {
	// Given: a board with a single mark
	board := Board{PlayerX}

	// When: converting to strings
	cells := board.Strings()

	// Then: marks are rendered as is and empty cells as empty strings
	assert.Equal(t, [BoardSize]string{"X", "", "", "", "", "", "", "", ""}, cells)
}
