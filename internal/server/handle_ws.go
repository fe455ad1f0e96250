package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// WSMessage is a move sent by a websocket client.
type WSMessage struct {
	Action Action `json:"action"`
	Col    int    `json:"col"`
	Row    int    `json:"row"`
}

// WSReply answers every websocket message.
type WSReply struct {
	Game  *GameResponse `json:"game,omitempty"`
	Error string        `json:"error,omitempty"`
}

// handlePlayWS upgrades to a websocket on which the client sends moves and
// receives the resulting game after each one.
func handlePlayWS(logger *slog.Logger, play *Play) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Minute)
		defer cancel()

		for {
			typ, msg, err := conn.Read(ctx)
			if err != nil {
				logger.Debug("websocket read ended", "game_id", s.ID, "error", err)
				return
			}
			if typ != websocket.MessageText {
				conn.Close(websocket.StatusUnsupportedData, "text frames only")
				return
			}

			reply := wsApply(ctx, play, s, msg)
			data, _ := json.Marshal(reply)
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				logger.Debug("websocket write failed", "game_id", s.ID, "error", err)
				return
			}
		}
	}
}

func wsApply(ctx context.Context, play *Play, s *Session, raw []byte) WSReply {
	var m WSMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return WSReply{Error: "invalid message"}
	}
	if !m.Action.valid() {
		return WSReply{Error: "action must be reveal or flag"}
	}
	resp, err := play.Move(ctx, s, m.Action, m.Col, m.Row)
	if err != nil {
		return WSReply{Error: err.Error()}
	}
	return WSReply{Game: &resp}
}
