package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	t.Run("Player takes O", func(t *testing.T) {
		// When: a game is created for a player with O
		game, err := NewGame("123", PlayerO, LevelHard)
		require.NoError(t, err)

		// Then: the bot plays X and X moves first
		expectedGame := &Game{
			ID:         "123",
			Mode:       ModeBot,
			Board:      NewBoard(),
			Status:     StatusOngoing,
			Turn:       PlayerX,
			PlayerMark: PlayerO,
			BotMark:    PlayerX,
			Level:      LevelHard,
		}
		require.Equal(t, expectedGame, game)
		assert.True(t, game.IsBotTurn())
	})

	t.Run("Empty mark", func(t *testing.T) {
		_, err := NewGame("123", EmptyCell, LevelHard)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Unknown level", func(t *testing.T) {
		_, err := NewGame("123", PlayerX, "impossible")
		require.ErrorIs(t, err, apperror.ErrUnknownLevel)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful Turn", func(t *testing.T) {
		// Given: A new game
		game, err := NewGame("123", PlayerX, LevelEasy)
		require.NoError(t, err)

		// When: Player X makes a valid turn
		err = game.MakeTurn(PlayerX, Move{Row: 0, Col: 0})
		require.NoError(t, err)

		// Then: The board reflects the turn and the turn switches
		assert.Equal(t, "X../.../...", game.Board.String())
		assert.Equal(t, PlayerO, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
		assert.True(t, game.IsBotTurn())
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		// Given: A game where cell (0,0) is occupied by Player X
		game, err := NewGame("123", PlayerX, LevelEasy)
		require.NoError(t, err)
		require.NoError(t, game.MakeTurn(PlayerX, Move{Row: 0, Col: 0}))

		// When: Player O tries to make a move to the same cell
		err = game.MakeTurn(PlayerO, Move{Row: 0, Col: 0})

		// Then: An ErrCellOccupied error should be returned and the turn stays
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, PlayerO, game.Turn)
	})

	t.Run("Error on Playing Out of Turn", func(t *testing.T) {
		game, err := NewGame("123", PlayerO, LevelEasy)
		require.NoError(t, err)

		err = game.MakeTurn(PlayerO, Move{Row: 1, Col: 1})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, NewBoard(), game.Board)
	})

	t.Run("Error on Invalid Cell", func(t *testing.T) {
		game, err := NewGame("123", PlayerX, LevelEasy)
		require.NoError(t, err)

		err = game.MakeTurn(PlayerX, Move{Row: 0, Col: 20})

		require.ErrorIs(t, err, apperror.ErrOutOfRange)
		assert.Equal(t, PlayerX, game.Turn)
	})

	t.Run("Winning turn finishes the game", func(t *testing.T) {
		// Given: X is one move from a row
		game := &Game{Board: mustParseBoard(t, "XX./OO./..."), Status: StatusOngoing, Turn: PlayerX}

		// When: X completes the row
		err := game.MakeTurn(PlayerX, Move{Row: 0, Col: 2})
		require.NoError(t, err)

		// Then: the game is finished with X as the winner
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, "X", game.Winner)
		assert.Equal(t, EmptyCell, game.Turn)

		// And: no further turns are accepted
		require.ErrorIs(t, game.MakeTurn(PlayerO, Move{Row: 1, Col: 2}), apperror.ErrGameFinished)
	})

	t.Run("Last cell draws", func(t *testing.T) {
		game := &Game{Board: mustParseBoard(t, "XOX/XOO/OX."), Status: StatusOngoing, Turn: PlayerX}

		err := game.MakeTurn(PlayerX, Move{Row: 2, Col: 2})
		require.NoError(t, err)

		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, ResultTie, game.Winner)
	})
}

func TestGame_JSON(t *testing.T) {
	// Given: a game in progress
	game, err := NewGame("abc", PlayerO, LevelHard)
	require.NoError(t, err)
	require.NoError(t, game.MakeTurn(PlayerX, Move{Row: 1, Col: 1}))

	// When: the game is marshalled
	data, err := json.Marshal(game)
	require.NoError(t, err)

	// Then: cells are written as symbols and read back unchanged
	assert.JSONEq(t, `{
		"id": "abc",
		"mode": "bot",
		"board": ["...", ".X.", "..."],
		"winner": "",
		"status": "ongoing",
		"player_turn": "O",
		"player_mark": "O",
		"bot_mark": "X",
		"level": "hard"
	}`, string(data))

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *game, decoded)
}

func TestNewMultiplayerGame(t *testing.T) {
	// When: two players are paired
	game := NewMultiplayerGame("g1", "p1", "p2")

	// Then: the first player holds X and moves first, nobody is a bot
	assert.Equal(t, ModeMultiplayer, game.Mode)
	assert.Equal(t, PlayerX, game.Turn)
	assert.True(t, game.IsMultiplayer())
	assert.False(t, game.IsBotTurn())

	markX, err := game.MarkOf("p1")
	require.NoError(t, err)
	assert.Equal(t, PlayerX, markX)

	markO, err := game.MarkOf("p2")
	require.NoError(t, err)
	assert.Equal(t, PlayerO, markO)

	_, err = game.MarkOf("stranger")
	require.ErrorIs(t, err, apperror.ErrNotInGame)

	// And: each player sees the other as opponent
	opponent, err := game.OpponentOf("p1")
	require.NoError(t, err)
	assert.Equal(t, "p2", opponent)

	opponent, err = game.OpponentOf("p2")
	require.NoError(t, err)
	assert.Equal(t, "p1", opponent)
}

func TestGame_MarkOf_BotGame(t *testing.T) {
	game, err := NewGame("g1", PlayerX, LevelHard)
	require.NoError(t, err)

	_, err = game.MarkOf("")
	require.ErrorIs(t, err, apperror.ErrNotInGame)
}

func TestMultiplayerGame_JSON(t *testing.T) {
	// Given: a multiplayer game after the first turn
	game := NewMultiplayerGame("g1", "p1", "p2")
	require.NoError(t, game.MakeTurn(PlayerX, Move{Row: 0, Col: 0}))

	// When: the game is marshalled
	data, err := json.Marshal(game)
	require.NoError(t, err)

	// Then: bot fields are left out
	assert.JSONEq(t, `{
		"id": "g1",
		"mode": "multiplayer",
		"board": ["X..", "...", "..."],
		"winner": "",
		"status": "ongoing",
		"player_turn": "O",
		"player_x_id": "p1",
		"player_o_id": "p2"
	}`, string(data))

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *game, decoded)
}

func TestPlayer_JoinAndLeaveGame(t *testing.T) {
	player := NewPlayer("p1", "alice")
	assert.False(t, player.InGame())

	player.JoinGame("g1", PlayerO)
	assert.True(t, player.InGame())
	assert.Equal(t, PlayerO, player.Mark)

	player.LeaveGame()
	assert.Equal(t, &Player{ID: "p1", Name: "alice"}, player)
}
