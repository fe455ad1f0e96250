package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/minesweeper/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type gameIDPath struct {
	GameID string `path:"gameID"`
}

type resultsQuery struct {
	Limit int `query:"limit" minimum:"1" maximum:"100"`
}

type leaderboardQuery struct {
	Columns int `query:"columns"`
	Rows    int `query:"rows"`
	Mines   int `query:"mines"`
	Limit   int `query:"limit" minimum:"1" maximum:"100"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Minesweeper API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Play minesweeper boards over HTTP, SSE and WebSocket.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(health.Report{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Report{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Starts a new board. Omitted fields use the server defaults; seed makes mine placement reproducible.")
	createGame.AddReqStructure(CreateGameRequest{})
	createGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createGame)

	// GET /api/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}")
	getGame.SetSummary("Get game")
	getGame.SetDescription("Returns the board as the player sees it. Mines are only shown once the game has ended.")
	getGame.AddReqStructure(gameIDPath{})
	getGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// DELETE /api/games/{gameID}
	deleteGame, _ := r.NewOperationContext(http.MethodDelete, "/api/games/{gameID}")
	deleteGame.SetSummary("Abandon game")
	deleteGame.AddReqStructure(gameIDPath{})
	deleteGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteGame)

	// GET /api/games/{gameID}/board.txt
	getText, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/board.txt")
	getText.SetSummary("Board as text")
	getText.SetDescription("One line per row: X hidden, F flagged, * mine, digit adjacent count.")
	getText.AddReqStructure(gameIDPath{})
	getText.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK), openapi.WithContentType("text/plain"))
	getText.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getText)

	for _, op := range []struct {
		path, summary, description string
	}{
		{"/api/games/{gameID}/reveal", "Reveal tile", "Reveals a tile. Empty regions open up to their numbered border. Off-board cells are ignored."},
		{"/api/games/{gameID}/flag", "Flag tile", "Flags or unflags a hidden tile. Revealed and off-board cells are ignored."},
	} {
		oc, _ := r.NewOperationContext(http.MethodPost, op.path)
		oc.SetSummary(op.summary)
		oc.SetDescription(op.description)
		oc.AddReqStructure(struct {
			gameIDPath
			MoveRequest
		}{})
		oc.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
		_ = r.AddOperation(oc)
	}

	// PUT /api/games/{gameID}/cursor
	putCursor, _ := r.NewOperationContext(http.MethodPut, "/api/games/{gameID}/cursor")
	putCursor.SetSummary("Point at cell")
	putCursor.SetDescription("Maps a pointer position on a width x height surface to the cell under it, clamped to the board.")
	putCursor.AddReqStructure(struct {
		gameIDPath
		CursorRequest
	}{})
	putCursor.AddRespStructure(CellRef{}, openapi.WithHTTPStatus(http.StatusOK))
	putCursor.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putCursor.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putCursor)

	for _, op := range []struct {
		path, summary string
	}{
		{"/api/games/{gameID}/reveal-cursor", "Reveal at cursor"},
		{"/api/games/{gameID}/flag-cursor", "Flag at cursor"},
	} {
		oc, _ := r.NewOperationContext(http.MethodPost, op.path)
		oc.SetSummary(op.summary)
		oc.AddReqStructure(gameIDPath{})
		oc.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
		_ = r.AddOperation(oc)
	}

	// POST /api/games/{gameID}/sound
	postSound, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/sound")
	postSound.SetSummary("Submit microphone samples")
	postSound.SetDescription("A frame louder than the configured threshold reveals the tile under the cursor.")
	postSound.AddReqStructure(struct {
		gameIDPath
		SoundRequest
	}{})
	postSound.AddRespStructure(SoundResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSound.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSound.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postSound)

	// GET /api/games/{gameID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of game state after every move.")
	getEvents.AddReqStructure(gameIDPath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/games/{gameID}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/ws")
	getWS.SetSummary("WebSocket play")
	getWS.SetDescription("Upgrades to a WebSocket. Each text message is a move; each reply carries the new game state.")
	getWS.AddReqStructure(gameIDPath{})
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// GET /api/results
	listResults, _ := r.NewOperationContext(http.MethodGet, "/api/results")
	listResults.SetSummary("Recent results")
	listResults.AddReqStructure(resultsQuery{})
	listResults.AddRespStructure([]Result{}, openapi.WithHTTPStatus(http.StatusOK))
	listResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(listResults)

	// DELETE /api/results
	purgeResults, _ := r.NewOperationContext(http.MethodDelete, "/api/results")
	purgeResults.SetSummary("Purge results")
	purgeResults.SetDescription("Deletes every stored result and resets the leaderboard. Requires HTTP basic auth as admin.")
	purgeResults.AddRespStructure(PurgeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	purgeResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(purgeResults)

	// GET /api/leaderboard
	getLeaders, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getLeaders.SetSummary("Fastest wins")
	getLeaders.SetDescription("Fastest wins for one board size. Defaults to the server's default board.")
	getLeaders.AddReqStructure(leaderboardQuery{})
	getLeaders.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getLeaders.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getLeaders)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
