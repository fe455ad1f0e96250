package server

import (
	"net/http"
	"strconv"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

type LeaderboardResponse struct {
	Columns int           `json:"columns"`
	Rows    int           `json:"rows"`
	Mines   int           `json:"mines"`
	Entries []LeaderEntry `json:"entries"`
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func listLimit(r *http.Request) (int, bool) {
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil || limit <= 0 {
		return 0, false
	}
	return min(limit, maxListLimit), true
}

func handleRecentResults(store ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := listLimit(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}

		results, err := store.RecentResults(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if results == nil {
			results = []Result{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func handlePurgeResults(store ResultStore, leaders Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := store.PurgeResults(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := leaders.Reset(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, PurgeResponse{Deleted: n})
	}
}

func handleLeaderboard(leaders Leaderboard, settings GameSettings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cols, errC := queryInt(r, "columns", settings.DefaultColumns)
		rows, errR := queryInt(r, "rows", settings.DefaultRows)
		mines, errM := queryInt(r, "mines", settings.DefaultMines)
		if errC != nil || errR != nil || errM != nil {
			writeError(w, http.StatusBadRequest, "columns, rows and mines must be integers")
			return
		}
		limit, ok := listLimit(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}

		entries, err := leaders.Top(r.Context(), cols, rows, mines, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, LeaderboardResponse{
			Columns: cols,
			Rows:    rows,
			Mines:   mines,
			Entries: entries,
		})
	}
}
