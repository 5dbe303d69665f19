package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository(t *testing.T) {
	t.Run("CreateOrUpdate_And_GetByID", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Redis, 0)

		// Given: a player assigned to a game
		player := entity.NewPlayer("p1", "alice")
		player.JoinGame("g1", entity.PlayerO)

		// When: the player is stored and read back
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))
		retrievedPlayer, err := playerRepo.GetByID(ctx, "p1")

		// Then: it matches the stored player
		require.NoError(t, err)
		assert.Equal(t, player, retrievedPlayer)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Redis, 0)

		_, err := playerRepo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})
}
