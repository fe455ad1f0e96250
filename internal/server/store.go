package server

import (
	"context"
	"time"
)

// Result summarises a finished game.
type Result struct {
	ID             string    `json:"id"`
	Columns        int       `json:"columns"`
	Rows           int       `json:"rows"`
	Mines          int       `json:"mines"`
	Outcome        string    `json:"outcome"`
	ElapsedSeconds int64     `json:"elapsedSeconds"`
	Revealed       int       `json:"revealed"`
	Flagged        int       `json:"flagged"`
	StartedAt      time.Time `json:"startedAt"`
	EndedAt        time.Time `json:"endedAt"`
}

// ResultStore keeps finished games. Live boards are never persisted.
type ResultStore interface {
	SaveResult(ctx context.Context, r Result) error
	RecentResults(ctx context.Context, limit int) ([]Result, error)
	FastestWins(ctx context.Context, columns, rows, mines, limit int) ([]Result, error)
	PurgeResults(ctx context.Context) (int64, error)
}
