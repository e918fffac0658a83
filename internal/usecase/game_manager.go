package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Hives/noughts-and-crosses/internal/entity"
	"github.com/Hives/noughts-and-crosses/internal/pkg"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs game operations against stored games. Operations on the
// same game are serialized, so a load-modify-save never interleaves with
// another one for that game inside this process.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	generateID func() (string, error)

	locksMu sync.Mutex
	locks   map[string]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game-manager"),
		gameRepo:   gameRepo,
		generateID: pkg.GenerateGameID,
		locks:      make(map[string]*gameLock),
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	gameID, err := that.generateID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game := entity.NewGame(gameID)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", gameID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeMove applies a move for whoever is next in the viewed step. The bool
// reports whether the move was accepted; ignored moves leave the game as is.
func (that *GameManager) MakeMove(ctx context.Context, id string, cell int) (*entity.Game, bool, error) {
	log := that.logger.With("method", "MakeMove", "gameID", id, "cell", cell)

	var applied bool
	game, err := that.update(ctx, id, func(game *entity.Game) (bool, error) {
		var err error
		applied, err = game.ApplyMove(cell)
		return applied, err
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to make move: %w", err)
	}

	if !applied {
		log.Debug("move ignored", "status", game.Status())
		return game, false, nil
	}

	if winner := game.Winner(); winner != entity.EmptyCell {
		log.Info("game won", "winner", winner, "step", game.Step)
	}

	return game, true, nil
}

func (that *GameManager) JumpToStep(ctx context.Context, id string, step int) (*entity.Game, error) {
	game, err := that.update(ctx, id, func(game *entity.Game) (bool, error) {
		return true, game.JumpToStep(step)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to jump to step: %w", err)
	}

	return game, nil
}

func (that *GameManager) RestartGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.update(ctx, id, func(game *entity.Game) (bool, error) {
		game.Restart()
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	that.logger.Info("game restarted", "gameID", id)

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// update loads the game, runs change and saves the result when change reports
// that it modified the game. The whole sequence holds the game's lock.
func (that *GameManager) update(ctx context.Context, id string, change func(game *entity.Game) (bool, error)) (*entity.Game, error) {
	unlock := that.lock(id)
	defer unlock()

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	changed, err := change(game)
	if err != nil {
		return nil, err
	}

	if !changed {
		return game, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *GameManager) lock(id string) func() {
	that.locksMu.Lock()
	entry, ok := that.locks[id]
	if !ok {
		entry = &gameLock{}
		that.locks[id] = entry
	}
	entry.refs++
	that.locksMu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.locksMu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, id)
		}
		that.locksMu.Unlock()
	}
}
