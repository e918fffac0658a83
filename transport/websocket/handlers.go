package websocket

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Hives/noughts-and-crosses/internal/apperror"
	"github.com/Hives/noughts-and-crosses/internal/tictactoe"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errCellRequired   = errors.New("cell is required")
	errStepRequired   = errors.New("step is required")
)

func (that *Server) handleNewGame(ctx context.Context, _ RequestPayload) (*tictactoe.View, error) {
	game, err := that.manager.CreateGame(ctx)
	if err != nil {
		return nil, err
	}

	return tictactoe.NewView(game), nil
}

func (that *Server) handleGetGame(ctx context.Context, req RequestPayload) (*tictactoe.View, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	game, err := that.manager.GetGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	return tictactoe.NewView(game), nil
}

func (that *Server) handleMove(ctx context.Context, req RequestPayload) (*tictactoe.View, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	if req.Cell == nil {
		return nil, errCellRequired
	}

	game, applied, err := that.manager.MakeMove(ctx, req.GameID, *req.Cell)
	if err != nil {
		return nil, err
	}

	return tictactoe.NewView(game).WithApplied(applied), nil
}

func (that *Server) handleJump(ctx context.Context, req RequestPayload) (*tictactoe.View, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	if req.Step == nil {
		return nil, errStepRequired
	}

	game, err := that.manager.JumpToStep(ctx, req.GameID, *req.Step)
	if err != nil {
		return nil, err
	}

	return tictactoe.NewView(game), nil
}

func (that *Server) handleRestart(ctx context.Context, req RequestPayload) (*tictactoe.View, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	game, err := that.manager.RestartGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	return tictactoe.NewView(game), nil
}

// errorPayload turns known errors into messages for the client and hides the rest.
func (that *Server) errorPayload(log *slog.Logger, err error) ResponsePayload {
	for _, known := range []error{
		apperror.ErrGameNotFound,
		apperror.ErrInvalidCell,
		apperror.ErrInvalidStep,
		errGameIDRequired,
		errCellRequired,
		errStepRequired,
	} {
		if errors.Is(err, known) {
			return ResponsePayload{Error: known.Error()}
		}
	}

	log.Error("failed to process message", "error", err)

	return ResponsePayload{Error: "internal server error"}
}
