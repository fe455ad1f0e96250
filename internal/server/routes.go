package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/minesweeper/internal/handler/health"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()
	deps.Games.OnEvict(func(id string) {
		broker.Publish(id, GameEvent{Type: eventDeleted})
	})
	play := NewPlay(deps.Results, deps.Leaderboard, broker, logger, deps.LoudnessDB)

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Minesweeper API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, deps.Checks).Routes())

	r.Post("/api/games", handleCreateGame(deps.Games, play))

	// Per-game routes; {gameID} is resolved by gameMiddleware.
	r.Route("/api/games/{gameID}", func(r chi.Router) {
		r.Use(gameMiddleware(deps.Games))
		r.Get("/", handleGetGame())
		r.Delete("/", handleDeleteGame(deps.Games))
		r.Get("/board.txt", handleBoardText())
		r.Post("/reveal", handleMove(play, ActionReveal))
		r.Post("/flag", handleMove(play, ActionFlag))
		r.Put("/cursor", handleSetCursor(play))
		r.Post("/reveal-cursor", handleMoveAtCursor(play, ActionReveal))
		r.Post("/flag-cursor", handleMoveAtCursor(play, ActionFlag))
		r.Post("/sound", handleSound(play))
		r.Get("/events", handleEvents(broker))
		r.Get("/ws", handlePlayWS(logger, play))
	})

	r.Get("/api/results", handleRecentResults(deps.Results))
	r.With(adminAuthMiddleware(deps.AdminPasswordHash)).
		Delete("/api/results", handlePurgeResults(deps.Results, deps.Leaderboard))
	r.Get("/api/leaderboard", handleLeaderboard(deps.Leaderboard, deps.Settings))

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
