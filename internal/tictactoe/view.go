package tictactoe

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/Hives/noughts-and-crosses/internal/entity"
)

// Move is one entry of the move list a client renders next to the board.
type Move struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// View is everything a client needs to draw a game: the board, the status
// line and the list of steps it can jump to.
type View struct {
	ID            string                   `json:"id"`
	Board         [entity.BoardSize]string `json:"board"`
	Step          int                      `json:"step"`
	Status        string                   `json:"status"`
	Winner        string                   `json:"winner,omitempty"`
	NextPlayer    string                   `json:"next_player,omitempty"`
	HistoryLength int                      `json:"history_length"`
	Moves         []Move                   `json:"moves"`
	Applied       *bool                    `json:"applied,omitempty"`
}

func NewView(game *entity.Game) *View {
	view := &View{
		ID:            game.ID,
		Board:         game.CurrentSnapshot().Strings(),
		Step:          game.Step,
		Status:        game.Status(),
		HistoryLength: game.HistoryLength(),
		Moves: lo.Times(game.HistoryLength(), func(step int) Move {
			return Move{
				Step:    step,
				Label:   MoveLabel(step),
				Current: step == game.Step,
			}
		}),
	}

	if winner := game.Winner(); winner != entity.EmptyCell {
		view.Winner = string(winner)
	} else {
		view.NextPlayer = string(game.CurrentTurn())
	}

	return view
}

// WithApplied records whether the move that produced this view was accepted.
func (that *View) WithApplied(applied bool) *View {
	that.Applied = &applied

	return that
}

func MoveLabel(step int) string {
	if step == 0 {
		return "Go to game start"
	}

	return "Go to move #" + strconv.Itoa(step)
}
