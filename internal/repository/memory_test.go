package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hives/noughts-and-crosses/internal/apperror"
	"github.com/Hives/noughts-and-crosses/internal/entity"
)

func newTestMemoryRepo(ttl time.Duration) (*MemoryGameRepository, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryGameRepository(ttl)
	repo.now = func() time.Time { return now }

	return repo, &now
}

func TestMemoryGameRepository_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestMemoryRepo(time.Hour)

	// Given: a game with one move
	game := entity.NewGame("123")
	_, err := game.ApplyMove(4)
	require.NoError(t, err)

	// When: it is saved and read back
	require.NoError(t, repo.CreateOrUpdate(ctx, game))
	stored, err := repo.GetByID(ctx, "123")

	// Then: the stored copy matches
	require.NoError(t, err)
	assert.Equal(t, game, stored)

	// And: changing the caller's game does not change the store
	_, err = game.ApplyMove(0)
	require.NoError(t, err)

	again, err := repo.GetByID(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, 2, again.HistoryLength())
}

func TestMemoryGameRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID_NotFound", func(t *testing.T) {
		repo, _ := newTestMemoryRepo(time.Hour)

		// When: GetByID is called with a non-existent ID
		game, err := repo.GetByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, game)
	})

	t.Run("GetByID_Expired", func(t *testing.T) {
		repo, now := newTestMemoryRepo(time.Hour)
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("123")))

		// When: the ttl passes
		*now = now.Add(time.Hour)
		_, err := repo.GetByID(ctx, "123")

		// Then: the game is gone
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("GetByID_NoTTL", func(t *testing.T) {
		repo, now := newTestMemoryRepo(0)
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("123")))

		// When: a long time passes
		*now = now.Add(24 * 365 * time.Hour)
		_, err := repo.GetByID(ctx, "123")

		// Then: the game is still there
		require.NoError(t, err)
	})

	t.Run("Update refreshes the ttl", func(t *testing.T) {
		repo, now := newTestMemoryRepo(time.Hour)
		game := entity.NewGame("123")
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		// When: the game is saved again just before it expires
		*now = now.Add(59 * time.Minute)
		require.NoError(t, repo.CreateOrUpdate(ctx, game))
		*now = now.Add(59 * time.Minute)

		// Then: it is still readable
		_, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
	})
}

func TestMemoryGameRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("DeleteByID_Success", func(t *testing.T) {
		repo, _ := newTestMemoryRepo(time.Hour)
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("123")))

		// When: DeleteByID is called with an existing ID
		err := repo.DeleteByID(ctx, "123")

		// Then: the game can no longer be read
		require.NoError(t, err)
		_, err = repo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		repo, _ := newTestMemoryRepo(time.Hour)

		// When: DeleteByID is called with a non-existent ID
		err := repo.DeleteByID(ctx, "9999999")

		// Then: ErrGameNotFound is returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestMemoryGameRepository_Sweep(t *testing.T) {
	ctx := context.Background()
	repo, now := newTestMemoryRepo(time.Hour)

	// Given: one old and one fresh game
	require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("old")))
	*now = now.Add(30 * time.Minute)
	require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("fresh")))

	// When: sweeping after the old game expired
	*now = now.Add(45 * time.Minute)
	removed := repo.Sweep()

	// Then: only the old game is removed
	assert.Equal(t, 1, removed)
	_, err := repo.GetByID(ctx, "fresh")
	require.NoError(t, err)
	assert.Len(t, repo.games, 1)
}
