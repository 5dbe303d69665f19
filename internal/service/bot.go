package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type BotService interface {
	ChooseMove(ctx context.Context, board entity.Board, mark entity.Cell, level string) (entity.Move, error)
	ScoreMoves(board entity.Board, mark entity.Cell) ([]tictactoe.ScoredMove, error)
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type moveCache interface {
	Get(ctx context.Context, board *entity.Board, mark entity.Cell) (entity.Move, bool, error)
	Set(ctx context.Context, board *entity.Board, mark entity.Cell, move entity.Move) error
}

type botService struct {
	logger    *slog.Logger
	moveCache moveCache

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBotService(logger *slog.Logger, moveCache moveCache, rnd *rand.Rand) BotService {
	return &botService{
		logger:    logger.With("component", "bot"),
		moveCache: moveCache,
		rnd:       rnd,
	}
}

// ChooseMove works on its own copy of board, so the caller's board is never touched.
func (that *botService) ChooseMove(ctx context.Context, board entity.Board, mark entity.Cell, level string) (entity.Move, error) {
	if !mark.IsMark() {
		return entity.Move{}, fmt.Errorf("%w: %s", apperror.ErrInvalidMark, mark)
	}

	switch level {
	case entity.LevelEasy:
		return that.randomMove(&board)
	case entity.LevelHard:
		return that.optimalMove(ctx, &board, mark)
	default:
		return entity.Move{}, fmt.Errorf("%w: %q", apperror.ErrUnknownLevel, level)
	}
}

func (that *botService) ScoreMoves(board entity.Board, mark entity.Cell) ([]tictactoe.ScoredMove, error) {
	moves, err := tictactoe.ScoreMoves(&board, mark)
	if err != nil {
		return nil, fmt.Errorf("failed to score moves: %w", err)
	}

	return moves, nil
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	move, err := that.ChooseMove(ctx, game.Board, game.BotMark, game.Level)
	if err != nil {
		return fmt.Errorf("bot failed to choose move: %w", err)
	}

	if err = game.MakeTurn(game.BotMark, move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *botService) randomMove(board *entity.Board) (entity.Move, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	move, err := tictactoe.RandomMove(board, that.rnd)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to pick random move: %w", err)
	}

	return move, nil
}

func (that *botService) optimalMove(ctx context.Context, board *entity.Board, mark entity.Cell) (entity.Move, error) {
	log := that.logger.With("board", board.String(), "mark", mark.String())

	move, found, err := that.moveCache.Get(ctx, board, mark)
	if err != nil {
		log.Warn("failed to read move cache", "error", err)
	}

	if found {
		log.Debug("move cache hit", "move", move.String())
		return move, nil
	}

	move, err = tictactoe.FindOptimalMove(board, mark)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to find optimal move: %w", err)
	}

	if err = that.moveCache.Set(ctx, board, mark, move); err != nil {
		log.Warn("failed to write move cache", "error", err)
	}

	log.Debug("optimal move found", "move", move.String())

	return move, nil
}
