package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func seedResults(t *testing.T, store ResultStore) {
	t.Helper()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []Result{
		{ID: "slow", Columns: 9, Rows: 9, Mines: 10, Outcome: "won", ElapsedSeconds: 95},
		{ID: "fast", Columns: 9, Rows: 9, Mines: 10, Outcome: "won", ElapsedSeconds: 41},
		{ID: "boom", Columns: 9, Rows: 9, Mines: 10, Outcome: "lost", ElapsedSeconds: 3},
		{ID: "other", Columns: 16, Rows: 16, Mines: 40, Outcome: "won", ElapsedSeconds: 12},
	}
	for i, r := range results {
		r.StartedAt = base.Add(time.Duration(i) * time.Minute)
		r.EndedAt = r.StartedAt.Add(time.Duration(r.ElapsedSeconds) * time.Second)
		if err := store.SaveResult(context.Background(), r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}
}

func TestRecentResults(t *testing.T) {
	r, deps := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/results", nil)
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("empty results body = %q, want []", got)
	}

	seedResults(t, deps.Results)

	got := decode[[]Result](t, doJSON(t, r, http.MethodGet, "/api/results?limit=2", nil))
	if len(got) != 2 {
		t.Fatalf("results = %d, want 2", len(got))
	}
	if got[0].ID != "other" {
		t.Errorf("most recent = %q, want other", got[0].ID)
	}

	for _, q := range []string{"?limit=0", "?limit=-3", "?limit=x"} {
		if rec := doJSON(t, r, http.MethodGet, "/api/results"+q, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestLeaderboardFromStore(t *testing.T) {
	r, deps := newTestRouter(t)
	seedResults(t, deps.Results)

	board := decode[LeaderboardResponse](t, doJSON(t, r, http.MethodGet, "/api/leaderboard", nil))
	if board.Columns != 9 || board.Rows != 9 || board.Mines != 10 {
		t.Errorf("board = %dx%d/%d, want defaults", board.Columns, board.Rows, board.Mines)
	}
	if len(board.Entries) != 2 {
		t.Fatalf("entries = %+v, want 2 wins", board.Entries)
	}
	if board.Entries[0].GameID != "fast" || board.Entries[1].GameID != "slow" {
		t.Errorf("order = %+v, want fast then slow", board.Entries)
	}

	board = decode[LeaderboardResponse](t, doJSON(t, r, http.MethodGet, "/api/leaderboard?columns=16&rows=16&mines=40", nil))
	if len(board.Entries) != 1 || board.Entries[0].ElapsedSeconds != 12 {
		t.Errorf("16x16 entries = %+v", board.Entries)
	}

	if rec := doJSON(t, r, http.MethodGet, "/api/leaderboard?mines=many", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad mines: status = %d, want 400", rec.Code)
	}
}

func TestPurgeResultsRequiresAdmin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	deps := newTestDeps(t)
	deps.AdminPasswordHash = string(hash)
	r := NewRouter(discardLogger, deps)
	seedResults(t, deps.Results)

	tests := []struct {
		name       string
		user, pass string
		auth       bool
		wantStatus int
	}{
		{"no credentials", "", "", false, http.StatusUnauthorized},
		{"wrong password", "admin", "letmein", true, http.StatusUnauthorized},
		{"wrong user", "root", "hunter2", true, http.StatusUnauthorized},
		{"admin", "admin", "hunter2", true, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/results", nil)
			if tt.auth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if rec.Code == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
			if rec.Code == http.StatusOK {
				if got := decode[PurgeResponse](t, rec); got.Deleted != 4 {
					t.Errorf("deleted = %d, want 4", got.Deleted)
				}
			}
		})
	}

	got := decode[[]Result](t, doJSON(t, r, http.MethodGet, "/api/results", nil))
	if len(got) != 0 {
		t.Errorf("results after purge = %d", len(got))
	}
}

func TestPurgeResultsWithoutConfiguredHash(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/results", nil)
	req.SetBasicAuth("admin", "")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
