package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/Hives/noughts-and-crosses/internal/apperror"
	"github.com/Hives/noughts-and-crosses/internal/entity"
)

type memoryEntry struct {
	game      *entity.Game
	expiresAt time.Time
}

// MemoryGameRepository keeps games in process memory. Games are copied on the
// way in and out so callers never share history slices with the store.
type MemoryGameRepository struct {
	mu    sync.RWMutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryGameRepository(ttl time.Duration) *MemoryGameRepository {
	return &MemoryGameRepository{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *MemoryGameRepository) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	entry := memoryEntry{game: game.Clone()}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	that.games[game.ID] = entry
	that.mu.Unlock()

	return nil
}

func (that *MemoryGameRepository) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	entry, ok := that.games[id]
	that.mu.RUnlock()

	if !ok || that.expired(entry) {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	return entry.game.Clone(), nil
}

func (that *MemoryGameRepository) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.games[id]
	if !ok || that.expired(entry) {
		return fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	delete(that.games, id)

	return nil
}

// Sweep drops expired games and returns how many were removed.
func (that *MemoryGameRepository) Sweep() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	alive := lo.OmitBy(that.games, func(_ string, entry memoryEntry) bool {
		return that.expired(entry)
	})
	removed := len(that.games) - len(alive)
	that.games = alive

	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (that *MemoryGameRepository) RunSweeper(ctx context.Context, logger *slog.Logger, interval time.Duration) {
	log := logger.With("component", "memory-sweeper")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := that.Sweep(); removed > 0 {
				log.Info("expired games removed", "count", removed)
			}
		}
	}
}

func (that *MemoryGameRepository) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}
