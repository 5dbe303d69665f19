package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveCacheRepository(t *testing.T) {
	t.Run("Miss", func(t *testing.T) {
		ctx, st := suite.New(t)

		moveCache := NewMoveCacheRepository(st.Redis, 0)
		board := entity.NewBoard()

		// When: an unknown position is looked up
		_, found, err := moveCache.Get(ctx, &board, entity.PlayerX)

		// Then: nothing is found and no error is returned
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Hit", func(t *testing.T) {
		ctx, st := suite.New(t)

		moveCache := NewMoveCacheRepository(st.Redis, 0)
		board, err := entity.ParseBoard("XX./OO./...")
		require.NoError(t, err)

		// Given: a solved position
		require.NoError(t, moveCache.Set(ctx, &board, entity.PlayerX, entity.Move{Row: 0, Col: 2}))

		// When: the same position is looked up
		move, found, err := moveCache.Get(ctx, &board, entity.PlayerX)

		// Then: the stored move comes back
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)

		// And: the key names board and mark
		exists, err := st.Redis.Exists(ctx, "move:XX./OO./...:X").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("Mark is part of the key", func(t *testing.T) {
		ctx, st := suite.New(t)

		moveCache := NewMoveCacheRepository(st.Redis, 0)
		board, err := entity.ParseBoard("XX./OO./...")
		require.NoError(t, err)

		require.NoError(t, moveCache.Set(ctx, &board, entity.PlayerX, entity.Move{Row: 0, Col: 2}))

		_, found, err := moveCache.Get(ctx, &board, entity.PlayerO)

		require.NoError(t, err)
		assert.False(t, found)
	})
}
