package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type mockMoveCache struct {
	mock.Mock
}

func (that *mockMoveCache) Get(ctx context.Context, board *entity.Board, mark entity.Cell) (entity.Move, bool, error) {
	args := that.Called(ctx, *board, mark)
	return args.Get(0).(entity.Move), args.Bool(1), args.Error(2)
}

func (that *mockMoveCache) Set(ctx context.Context, board *entity.Board, mark entity.Cell, move entity.Move) error {
	args := that.Called(ctx, *board, mark, move)
	return args.Error(0)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}
