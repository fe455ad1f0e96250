package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/minesweeper/internal/database"
	"github.com/playperu/minesweeper/internal/handler/health"
	"github.com/playperu/minesweeper/internal/migrations"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testSettings() GameSettings {
	return GameSettings{DefaultColumns: 9, DefaultRows: 9, DefaultMines: 10, MaxCells: 400}
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.MemoryPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSQLiteStore(db)
}

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	store := newTestStore(t)
	settings := testSettings()
	return Deps{
		Games:       NewGames(settings),
		Settings:    settings,
		Results:     store,
		Leaderboard: NewStoreLeaderboard(store),
		Checks:      map[string]health.Checker{},
		LoudnessDB:  -30,
	}
}

func newTestRouter(t *testing.T) (chi.Router, Deps) {
	t.Helper()
	deps := newTestDeps(t)
	return NewRouter(discardLogger, deps), deps
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func intPtr(n int) *int { return &n }

func seedPtr(n uint64) *uint64 { return &n }

// createGame starts a game through the API and returns its view.
func createGame(t *testing.T, h http.Handler, req CreateGameRequest) GameResponse {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/games", req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create game: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	return decode[GameResponse](t, rec)
}
