package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type MultiplayerService interface {
	Join(ctx context.Context, playerID, name string) (*entity.Player, *entity.Game, error)
	Leave(ctx context.Context, playerID string) error
	GetPlayer(ctx context.Context, playerID string) (*entity.Player, error)

	MakeTurn(ctx context.Context, gameID, playerID string, move entity.Move) (*entity.Game, error)
	RemoveGame(ctx context.Context, playerID string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type lobbyRepo interface {
	Enqueue(ctx context.Context, playerID string) (bool, error)
	Remove(ctx context.Context, playerID string) (bool, error)
	DequeuePair(ctx context.Context) (string, string, error)
}

type multiplayerService struct {
	logger *slog.Logger

	playerRepo playerRepo
	lobbyRepo  lobbyRepo
	gameRepo   gameRepo
}

func NewMultiplayerService(logger *slog.Logger, playerRepo playerRepo, lobbyRepo lobbyRepo, gameRepo gameRepo) MultiplayerService {
	return &multiplayerService{
		logger:     logger.With("component", "multiplayer"),
		playerRepo: playerRepo,
		lobbyRepo:  lobbyRepo,
		gameRepo:   gameRepo,
	}
}

// Join puts the player in the queue and starts a game as soon as somebody else is waiting.
// An empty playerID registers a new player. The game is nil while the player waits.
func (that *multiplayerService) Join(ctx context.Context, playerID, name string) (*entity.Player, *entity.Game, error) {
	player, err := that.getOrCreatePlayer(ctx, playerID, name)
	if err != nil {
		return nil, nil, err
	}

	if err = that.releaseFinishedGame(ctx, player); err != nil {
		return nil, nil, err
	}

	added, err := that.lobbyRepo.Enqueue(ctx, player.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to join queue: %w", err)
	}

	if !added {
		return nil, nil, apperror.ErrAlreadyWaiting
	}

	game, err := that.pair(ctx)
	if errors.Is(err, apperror.ErrNotEnoughPlayers) {
		that.logger.Debug("player is waiting", "playerID", player.ID)
		return player, nil, nil
	}

	if err != nil {
		return nil, nil, err
	}

	// pair saved the player with its new game
	if player, err = that.GetPlayer(ctx, player.ID); err != nil {
		return nil, nil, err
	}

	if player.GameID != game.ID {
		return player, nil, nil
	}

	return player, game, nil
}

// Leave takes a waiting player out of the queue.
func (that *multiplayerService) Leave(ctx context.Context, playerID string) error {
	removed, err := that.lobbyRepo.Remove(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to leave queue: %w", err)
	}

	if !removed {
		return apperror.ErrNotWaiting
	}

	return nil
}

func (that *multiplayerService) GetPlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// MakeTurn plays the mark playerID holds in the game.
func (that *multiplayerService) MakeTurn(ctx context.Context, gameID, playerID string, move entity.Move) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	mark, err := game.MarkOf(playerID)
	if err != nil {
		return nil, fmt.Errorf("player %s in game %s: %w", playerID, gameID, err)
	}

	if err = game.MakeTurn(mark, move); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	}

	return game, nil
}

// RemoveGame deletes the player's game and frees both players.
func (that *multiplayerService) RemoveGame(ctx context.Context, playerID string) error {
	player, err := that.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	if !player.InGame() {
		return apperror.ErrNotInGame
	}

	log := that.logger.With("method", "RemoveGame", "gameID", player.GameID)

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		log.Debug("game already expired")
	case err != nil:
		return fmt.Errorf("failed to get game by id: %w", err)
	default:
		if err = that.gameRepo.DeleteByID(ctx, game.ID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
			return fmt.Errorf("failed to delete game: %w", err)
		}

		if opponentID, opponentErr := game.OpponentOf(player.ID); opponentErr == nil {
			that.freePlayer(ctx, log, opponentID, game.ID)
		}
	}

	player.LeaveGame()
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *multiplayerService) getOrCreatePlayer(ctx context.Context, playerID, name string) (*entity.Player, error) {
	if playerID != "" {
		return that.GetPlayer(ctx, playerID)
	}

	player := entity.NewPlayer(uuid.NewString(), name)
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// releaseFinishedGame lets a player whose game ended or expired queue again.
func (that *multiplayerService) releaseFinishedGame(ctx context.Context, player *entity.Player) error {
	if !player.InGame() {
		return nil
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
	case err != nil:
		return fmt.Errorf("failed to get game by id: %w", err)
	case !game.IsFinished():
		return fmt.Errorf("%w: %s", apperror.ErrAlreadyInGame, game.ID)
	}

	player.LeaveGame()
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

// pair starts a game for the two earliest players in the queue, the first one gets X.
func (that *multiplayerService) pair(ctx context.Context) (*entity.Game, error) {
	firstID, secondID, err := that.lobbyRepo.DequeuePair(ctx)
	if err != nil {
		return nil, err
	}

	first, err := that.GetPlayer(ctx, firstID)
	if err != nil {
		return nil, err
	}

	second, err := that.GetPlayer(ctx, secondID)
	if err != nil {
		return nil, err
	}

	game := entity.NewMultiplayerGame(uuid.NewString(), first.ID, second.ID)
	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	first.JoinGame(game.ID, entity.PlayerX)
	second.JoinGame(game.ID, entity.PlayerO)

	for _, player := range []*entity.Player{first, second} {
		if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to update player: %w", err)
		}
	}

	that.logger.Info("players paired", "gameID", game.ID, "playerX", first.ID, "playerO", second.ID)

	return game, nil
}

func (that *multiplayerService) freePlayer(ctx context.Context, log *slog.Logger, playerID, gameID string) {
	player, err := that.GetPlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get opponent", "player", playerID, "error", err)
		return
	}

	if player.GameID != gameID {
		return
	}

	player.LeaveGame()
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		log.Error("failed to update", "player", playerID, "error", err)
	}
}
