package server

import (
	"math"
	"net/http"
)

type MoveRequest struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type CursorRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type SoundRequest struct {
	Samples []int16 `json:"samples"`
}

type SoundResponse struct {
	LevelDB   *float64     `json:"levelDb"`
	Triggered bool         `json:"triggered"`
	Game      GameResponse `json:"game"`
}

// handleMove applies action at the coordinates in the body. Off-board
// coordinates are accepted and ignored by the engine.
func handleMove(play *Play, action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MoveRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := play.Move(r.Context(), sessionFrom(r), action, req.Col, req.Row)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleMoveAtCursor(play *Play, action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := play.MoveAtCursor(r.Context(), sessionFrom(r), action)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleSetCursor(play *Play) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CursorRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Width <= 0 || req.Height <= 0 {
			writeError(w, http.StatusBadRequest, "width and height must be positive")
			return
		}

		writeJSON(w, http.StatusOK, play.PointAt(sessionFrom(r), req.X, req.Y, req.Width, req.Height))
	}
}

func handleSound(play *Play) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SoundRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		level, triggered, game := play.Listen(r.Context(), sessionFrom(r), req.Samples)
		resp := SoundResponse{Triggered: triggered, Game: game}
		// JSON has no -Inf; silence reports a null level.
		if !math.IsInf(level, 0) {
			resp.LevelDB = &level
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
