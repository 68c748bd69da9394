// Package leaderboard keeps each player's best score in a Redis sorted set.
package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNilClient = errors.New("leaderboard needs a redis client")

// RedisLeaderboard stores scores in the sorted set at key and usernames in
// the hash at key:names. Members are player IDs.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
}

// NewRedisLeaderboard initializes a RedisLeaderboard on the given client and key.
func NewRedisLeaderboard(client *redis.Client, key string) (i.Leaderboard, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	pool := goredis.NewPool(client)
	return &RedisLeaderboard{
		client: client,
		locker: redsync.New(pool),
		key:    key,
	}, nil
}

func (rl *RedisLeaderboard) namesKey() string {
	return rl.key + ":names"
}

// Submit keeps the higher of the stored and the submitted score. A per
// player lock serializes the read and the write.
func (rl *RedisLeaderboard) Submit(ctx context.Context, e game.LeaderboardEntry) (bool, error) {
	member := e.PlayerID.String()

	mutex := rl.locker.NewMutex(rl.key + ":" + member + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return false, fmt.Errorf("locking leaderboard entry: %w", err)
	}
	defer func() {
		// release even when the caller's context ended mid-submit
		_, _ = mutex.UnlockContext(context.WithoutCancel(ctx))
	}()

	current, err := rl.client.ZScore(ctx, rl.key, member).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return false, err
	case int(current) >= e.Score:
		return false, nil
	}

	pipe := rl.client.TxPipeline()
	pipe.ZAdd(ctx, rl.key, redis.Z{Score: float64(e.Score), Member: member})
	pipe.HSet(ctx, rl.namesKey(), member, e.Username)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Top returns up to n entries with the highest scores.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int64) ([]game.LeaderboardEntry, error) {
	if n <= 0 {
		return []game.LeaderboardEntry{}, nil
	}

	scores, err := rl.client.ZRevRangeWithScores(ctx, rl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return []game.LeaderboardEntry{}, nil
	}

	members := make([]string, len(scores))
	for idx, z := range scores {
		members[idx] = z.Member.(string)
	}
	names, err := rl.client.HMGet(ctx, rl.namesKey(), members...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]game.LeaderboardEntry, 0, len(scores))
	for idx, z := range scores {
		id, err := uuid.Parse(members[idx])
		if err != nil {
			continue
		}
		username, _ := names[idx].(string)
		entries = append(entries, game.LeaderboardEntry{
			PlayerID: id,
			Username: username,
			Score:    int(z.Score),
			Rank:     len(entries) + 1,
		})
	}
	return entries, nil
}

// Count returns the number of players on the board.
func (rl *RedisLeaderboard) Count(ctx context.Context) (int64, error) {
	n, err := rl.client.ZCard(ctx, rl.key).Result()
	if err != nil {
		return 0, fmt.Errorf("counting players: %w", err)
	}
	return n, nil
}
