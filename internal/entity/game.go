package entity

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/Hives/noughts-and-crosses/internal/apperror"
)

// Game keeps every board reached so far and the step currently being viewed.
type Game struct {
	ID        string    `json:"id"`
	History   []Board   `json:"history"`
	Step      int       `json:"step"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewGame(id string) *Game {
	now := time.Now().UTC()

	return &Game{
		ID:        id,
		History:   []Board{{}},
		Step:      0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyMove places the current player's mark at cell. It reports false without
// touching the game when the cell is taken or the game already has a winner.
func (that *Game) ApplyMove(cell int) (bool, error) {
	if cell < 0 || cell >= BoardSize {
		return false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	current := that.CurrentSnapshot()
	if current.Winner() != EmptyCell || current[cell] != EmptyCell {
		return false, nil
	}

	current[cell] = that.CurrentTurn()

	// moving from a past step drops everything after it
	that.History = append(that.History[:that.Step+1:that.Step+1], current)
	that.Step++
	that.UpdatedAt = time.Now().UTC()

	return true, nil
}

// JumpToStep makes an earlier (or later) snapshot current. History is only
// truncated by the next ApplyMove.
func (that *Game) JumpToStep(step int) error {
	if step < 0 || step >= len(that.History) {
		return fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, step, len(that.History))
	}

	that.Step = step
	that.UpdatedAt = time.Now().UTC()

	return nil
}

// Restart drops the whole history and goes back to an empty board.
func (that *Game) Restart() {
	that.History = []Board{{}}
	that.Step = 0
	that.UpdatedAt = time.Now().UTC()
}

func (that *Game) CurrentSnapshot() Board {
	return that.History[that.Step]
}

func (that *Game) CurrentTurn() Mark {
	return markForStep(that.Step)
}

// markForStep returns who moves from the snapshot at step.
func markForStep(step int) Mark {
	if step%2 == 0 {
		return PlayerX
	}

	return PlayerO
}

func (that *Game) Winner() Mark {
	return that.CurrentSnapshot().Winner()
}

func (that *Game) Status() string {
	if winner := that.Winner(); winner != EmptyCell {
		return "Winner: " + string(winner)
	}

	return "Next player: " + string(that.CurrentTurn())
}

func (that *Game) HistoryLength() int {
	return len(that.History)
}

func (that *Game) Clone() *Game {
	clone := *that
	clone.History = append([]Board(nil), that.History...)

	return &clone
}

// Validate checks a game that came from outside the process, e.g. storage.
func (that *Game) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: empty history", apperror.ErrCorruptedGame)
	}

	if !that.History[0].IsEmpty() {
		return fmt.Errorf("%w: first snapshot is not empty", apperror.ErrCorruptedGame)
	}

	if that.Step < 0 || that.Step >= len(that.History) {
		return fmt.Errorf("%w: step %d out of range", apperror.ErrCorruptedGame, that.Step)
	}

	for i := 1; i < len(that.History); i++ {
		prev, next := that.History[i-1], that.History[i]

		changed := lo.Filter(lo.Range(BoardSize), func(cell, _ int) bool {
			return prev[cell] != next[cell]
		})
		if len(changed) != 1 {
			return fmt.Errorf("%w: snapshot %d changes %d cells", apperror.ErrCorruptedGame, i, len(changed))
		}

		cell := changed[0]
		if prev[cell] != EmptyCell || !next[cell].IsPlayer() {
			return fmt.Errorf("%w: snapshot %d overwrites cell %d", apperror.ErrCorruptedGame, i, cell)
		}

		if next[cell] != markForStep(i-1) {
			return fmt.Errorf("%w: snapshot %d placed %s out of turn", apperror.ErrCorruptedGame, i, next[cell])
		}

		if prev.Winner() != EmptyCell {
			return fmt.Errorf("%w: snapshot %d follows a finished board", apperror.ErrCorruptedGame, i)
		}
	}

	return nil
}
