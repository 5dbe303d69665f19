package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

// MoveCacheRepository remembers optimal moves of already solved positions.
type MoveCacheRepository interface {
	Get(ctx context.Context, board *entity.Board, mark entity.Cell) (entity.Move, bool, error)
	Set(ctx context.Context, board *entity.Board, mark entity.Cell, move entity.Move) error
}

type dbMoveCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMoveCacheRepository(client *redis.Client, ttl time.Duration) MoveCacheRepository {
	return &dbMoveCache{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMoveCache) Get(ctx context.Context, board *entity.Board, mark entity.Cell) (entity.Move, bool, error) {
	response, err := that.client.Get(ctx, moveKey(board, mark)).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Move{}, false, nil
	}

	if err != nil {
		return entity.Move{}, false, fmt.Errorf("failed to get cached move: %w", err)
	}

	var move entity.Move
	if err = json.Unmarshal([]byte(response), &move); err != nil {
		return entity.Move{}, false, fmt.Errorf("failed to unmarshal cached move: %w", err)
	}

	return move, true, nil
}

func (that *dbMoveCache) Set(ctx context.Context, board *entity.Board, mark entity.Cell, move entity.Move) error {
	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	if err = that.client.Set(ctx, moveKey(board, mark), moveJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cached move: %w", err)
	}

	return nil
}

func moveKey(board *entity.Board, mark entity.Cell) string {
	return "move:" + board.String() + ":" + mark.String()
}
