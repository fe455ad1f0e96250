package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/playperu/minesweeper/internal/minesweeper"
	"github.com/playperu/minesweeper/internal/render"
)

type CreateGameRequest struct {
	Columns int     `json:"columns,omitempty"`
	Rows    int     `json:"rows,omitempty"`
	Mines   *int    `json:"mines,omitempty"`
	Seed    *uint64 `json:"seed,omitempty"`
}

func handleCreateGame(games *Games, play *Play) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// An empty body asks for the default board.
		var req CreateGameRequest
		if err := readJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		s, err := games.Create(NewGame{
			Columns: req.Columns,
			Rows:    req.Rows,
			Mines:   req.Mines,
			Seed:    req.Seed,
		})
		if errors.Is(err, minesweeper.ErrInvalidConfig) || errors.Is(err, ErrBoardTooLarge) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		play.logger.Info("game created",
			"game_id", s.ID,
			"board", fmt.Sprintf("%dx%d/%d", s.Board.Columns(), s.Board.Rows(), s.Board.Mines()),
		)
		writeJSON(w, http.StatusCreated, view(s))
	}
}

func handleGetGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, view(sessionFrom(r)))
	}
}

func handleDeleteGame(games *Games) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFrom(r)
		if err := games.Delete(s.ID); err != nil {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleBoardText() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFrom(r)
		snap := s.Board.Snapshot()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if banner := render.Banner(snap.State); banner != "" {
			fmt.Fprintln(w, banner)
		}
		fmt.Fprint(w, render.Text(snap))
		fmt.Fprintf(w, "time %ds  flags %d/%d\n", snap.Elapsed, snap.Flagged, snap.Mines)
	}
}
