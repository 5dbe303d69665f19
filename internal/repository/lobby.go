package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

const lobbyKey = "lobby:queue"

// enqueueScript appends a player id unless it is already queued.
var enqueueScript = redis.NewScript(`
if redis.call("LPOS", KEYS[1], ARGV[1]) then
	return 0
end
redis.call("RPUSH", KEYS[1], ARGV[1])
return 1
`)

// dequeuePairScript pops the two earliest ids, or nothing when fewer are waiting.
var dequeuePairScript = redis.NewScript(`
if redis.call("LLEN", KEYS[1]) < 2 then
	return {}
end
return {redis.call("LPOP", KEYS[1]), redis.call("LPOP", KEYS[1])}
`)

// LobbyRepository is the FIFO queue of players waiting for an opponent.
type LobbyRepository interface {
	Enqueue(ctx context.Context, playerID string) (bool, error)
	Contains(ctx context.Context, playerID string) (bool, error)
	Remove(ctx context.Context, playerID string) (bool, error)
	Len(ctx context.Context) (int64, error)
	DequeuePair(ctx context.Context) (string, string, error)
}

type dbLobby struct {
	client *redis.Client
}

func NewLobbyRepository(client *redis.Client) LobbyRepository {
	return &dbLobby{
		client: client,
	}
}

// Enqueue reports false when the player was already waiting.
func (that *dbLobby) Enqueue(ctx context.Context, playerID string) (bool, error) {
	added, err := enqueueScript.Run(ctx, that.client, []string{lobbyKey}, playerID).Int()
	if err != nil {
		return false, fmt.Errorf("failed to enqueue player: %w", err)
	}

	return added == 1, nil
}

func (that *dbLobby) Contains(ctx context.Context, playerID string) (bool, error) {
	_, err := that.client.LPos(ctx, lobbyKey, playerID, redis.LPosArgs{}).Result()

	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to look up player in queue: %w", err)
	}

	return true, nil
}

func (that *dbLobby) Remove(ctx context.Context, playerID string) (bool, error) {
	removed, err := that.client.LRem(ctx, lobbyKey, 0, playerID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to remove player from queue: %w", err)
	}

	return removed > 0, nil
}

func (that *dbLobby) Len(ctx context.Context) (int64, error) {
	length, err := that.client.LLen(ctx, lobbyKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}

	return length, nil
}

// DequeuePair pops the two earliest players atomically. ErrNotEnoughPlayers leaves the queue untouched.
func (that *dbLobby) DequeuePair(ctx context.Context) (string, string, error) {
	ids, err := dequeuePairScript.Run(ctx, that.client, []string{lobbyKey}).StringSlice()
	if err != nil {
		return "", "", fmt.Errorf("failed to dequeue players: %w", err)
	}

	if len(ids) != 2 {
		return "", "", apperror.ErrNotEnoughPlayers
	}

	return ids[0], ids[1], nil
}
