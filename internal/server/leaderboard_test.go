package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// deadRedis returns a client pointed at a port nothing listens on.
func deadRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisLeaderboardKey(t *testing.T) {
	l := NewRedisLeaderboard(deadRedis(t), "ms:")
	if got, want := l.key(9, 9, 10), "ms:leaderboard:9x9x10"; got != want {
		t.Errorf("key = %q, want %q", got, want)
	}
}

func TestRedisLeaderboardUnavailable(t *testing.T) {
	l := NewRedisLeaderboard(deadRedis(t), "ms:")
	ctx := context.Background()

	if err := l.RecordWin(ctx, Result{ID: "g", Columns: 9, Rows: 9, Mines: 10, ElapsedSeconds: 30}); err == nil {
		t.Error("RecordWin succeeded against a dead redis")
	}
	if _, err := l.Top(ctx, 9, 9, 10, 5); err == nil {
		t.Error("Top succeeded against a dead redis")
	}
	if err := l.Reset(ctx); err == nil {
		t.Error("Reset succeeded against a dead redis")
	}
}

func TestLeaderboardErrorIs500(t *testing.T) {
	deps := newTestDeps(t)
	deps.Leaderboard = NewRedisLeaderboard(deadRedis(t), "ms:")
	r := NewRouter(discardLogger, deps)

	rec := doJSON(t, r, http.MethodGet, "/api/leaderboard", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

// A failing leaderboard must not block the game or the stored result.
func TestWinSurvivesLeaderboardOutage(t *testing.T) {
	deps := newTestDeps(t)
	deps.Leaderboard = NewRedisLeaderboard(deadRedis(t), "ms:")
	r := NewRouter(discardLogger, deps)

	game := createGame(t, r, CreateGameRequest{Columns: 2, Rows: 2, Mines: intPtr(0)})
	after := decode[GameResponse](t, doJSON(t, r, http.MethodPost, "/api/games/"+game.ID+"/reveal", MoveRequest{Col: 1, Row: 1}))
	if after.State != "won" {
		t.Fatalf("state = %q, want won", after.State)
	}

	results, err := deps.Results.RecentResults(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(results) != 1 || results[0].ID != game.ID {
		t.Errorf("results = %+v", results)
	}
}
