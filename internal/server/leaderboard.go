package server

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// LeaderEntry is one ranked win.
type LeaderEntry struct {
	GameID         string `json:"gameId"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
}

// Leaderboard ranks wins per board size by elapsed time.
type Leaderboard interface {
	RecordWin(ctx context.Context, r Result) error
	Top(ctx context.Context, columns, rows, mines, limit int) ([]LeaderEntry, error)
	Reset(ctx context.Context) error
}

// RedisLeaderboard keeps one sorted set per board size, scored by seconds.
type RedisLeaderboard struct {
	client *redis.Client
	prefix string
}

func NewRedisLeaderboard(client *redis.Client, prefix string) *RedisLeaderboard {
	return &RedisLeaderboard{client: client, prefix: prefix}
}

func (l *RedisLeaderboard) key(columns, rows, mines int) string {
	return fmt.Sprintf("%sleaderboard:%dx%dx%d", l.prefix, columns, rows, mines)
}

func (l *RedisLeaderboard) RecordWin(ctx context.Context, r Result) error {
	err := l.client.ZAdd(ctx, l.key(r.Columns, r.Rows, r.Mines), redis.Z{
		Score:  float64(r.ElapsedSeconds),
		Member: r.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("recording win %s: %w", r.ID, err)
	}
	return nil
}

func (l *RedisLeaderboard) Top(ctx context.Context, columns, rows, mines, limit int) ([]LeaderEntry, error) {
	zs, err := l.client.ZRangeWithScores(ctx, l.key(columns, rows, mines), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}
	entries := make([]LeaderEntry, 0, len(zs))
	for _, z := range zs {
		id, _ := z.Member.(string)
		entries = append(entries, LeaderEntry{GameID: id, ElapsedSeconds: int64(z.Score)})
	}
	return entries, nil
}

func (l *RedisLeaderboard) Reset(ctx context.Context) error {
	iter := l.client.Scan(ctx, 0, l.prefix+"leaderboard:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning leaderboard keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := l.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting leaderboard keys: %w", err)
	}
	return nil
}

// StoreLeaderboard ranks wins straight from the result store. It is used
// when no redis is configured.
type StoreLeaderboard struct {
	store ResultStore
}

func NewStoreLeaderboard(store ResultStore) *StoreLeaderboard {
	return &StoreLeaderboard{store: store}
}

// RecordWin is a no-op: the result is already in the store.
func (l *StoreLeaderboard) RecordWin(context.Context, Result) error { return nil }

func (l *StoreLeaderboard) Top(ctx context.Context, columns, rows, mines, limit int) ([]LeaderEntry, error) {
	wins, err := l.store.FastestWins(ctx, columns, rows, mines, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderEntry, 0, len(wins))
	for _, w := range wins {
		entries = append(entries, LeaderEntry{GameID: w.ID, ElapsedSeconds: w.ElapsedSeconds})
	}
	return entries, nil
}

func (l *StoreLeaderboard) Reset(context.Context) error { return nil }
