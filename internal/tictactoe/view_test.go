package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hives/noughts-and-crosses/internal/entity"
)

func TestNewView(t *testing.T) {
	t.Run("New game", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123")

		// When: building its view
		view := NewView(game)

		// Then: the view shows an empty board with X to move
		expected := &View{
			ID:            "123",
			Board:         [entity.BoardSize]string{},
			Step:          0,
			Status:        "Next player: X",
			NextPlayer:    "X",
			HistoryLength: 1,
			Moves:         []Move{{Step: 0, Label: "Go to game start", Current: true}},
		}

		require.Equal(t, expected, view)
	})

	t.Run("Won game viewed in the past", func(t *testing.T) {
		// Given: a game X has won, viewed at step 1
		game := entity.NewGame("123")
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err := game.ApplyMove(cell)
			require.NoError(t, err)
		}
		require.NoError(t, game.JumpToStep(1))

		// When: building its view
		view := NewView(game)

		// Then: the view shows step 1 with every step in the move list
		assert.Equal(t, [entity.BoardSize]string{"X"}, view.Board)
		assert.Equal(t, "Next player: O", view.Status)
		assert.Equal(t, "O", view.NextPlayer)
		assert.Empty(t, view.Winner)
		require.Len(t, view.Moves, 6)
		assert.Equal(t, Move{Step: 1, Label: "Go to move #1", Current: true}, view.Moves[1])
		assert.Equal(t, Move{Step: 5, Label: "Go to move #5", Current: false}, view.Moves[5])
	})

	t.Run("Won game at the last step", func(t *testing.T) {
		// Given: a game X has won
		game := entity.NewGame("123")
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err := game.ApplyMove(cell)
			require.NoError(t, err)
		}

		// When: building its view
		view := NewView(game).WithApplied(false)

		// Then: the winner is set and nobody is next
		assert.Equal(t, "X", view.Winner)
		assert.Empty(t, view.NextPlayer)
		assert.Equal(t, "Winner: X", view.Status)
		require.NotNil(t, view.Applied)
		assert.False(t, *view.Applied)
	})
}

func TestMoveLabel(t *testing.T) {
	assert.Equal(t, "Go to game start", MoveLabel(0))
	assert.Equal(t, "Go to move #1", MoveLabel(1))
	assert.Equal(t, "Go to move #9", MoveLabel(9))
}
