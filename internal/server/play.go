package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playperu/minesweeper/internal/input"
	"github.com/playperu/minesweeper/internal/minesweeper"
	"github.com/playperu/minesweeper/internal/render"
)

type Action string

const (
	ActionReveal Action = "reveal"
	ActionFlag   Action = "flag"
)

func (a Action) valid() bool { return a == ActionReveal || a == ActionFlag }

type CellRef struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type CellView struct {
	State string `json:"state"`
	Count int    `json:"count,omitempty"`
	Mine  bool   `json:"mine,omitempty"`
}

type GameResponse struct {
	ID             string       `json:"id"`
	Columns        int          `json:"columns"`
	Rows           int          `json:"rows"`
	Mines          int          `json:"mines"`
	State          string       `json:"state"`
	Banner         string       `json:"banner,omitempty"`
	Flagged        int          `json:"flagged"`
	Revealed       int          `json:"revealed"`
	MinesRemaining int          `json:"minesRemaining"`
	ElapsedSeconds int64        `json:"elapsedSeconds"`
	Cursor         CellRef      `json:"cursor"`
	Cells          [][]CellView `json:"cells"`
}

// Play applies moves to sessions and fans out the consequences: events to
// subscribers and, once a game ends, its result to the store and leaderboard.
type Play struct {
	results     ResultStore
	leaders     Leaderboard
	broker      *Broker
	logger      *slog.Logger
	thresholdDB float64
}

func NewPlay(results ResultStore, leaders Leaderboard, broker *Broker, logger *slog.Logger, thresholdDB float64) *Play {
	return &Play{
		results:     results,
		leaders:     leaders,
		broker:      broker,
		logger:      logger,
		thresholdDB: thresholdDB,
	}
}

// Move applies action at (col, row) and returns the resulting view.
func (p *Play) Move(ctx context.Context, s *Session, action Action, col, row int) (GameResponse, error) {
	if !action.valid() {
		return GameResponse{}, fmt.Errorf("unknown action %q", action)
	}
	return p.apply(ctx, s, action, col, row), nil
}

// apply performs a valid action and settles the game.
func (p *Play) apply(ctx context.Context, s *Session, action Action, col, row int) GameResponse {
	if action == ActionFlag {
		s.Board.Flag(col, row)
	} else {
		s.Board.Reveal(col, row)
	}
	return p.settle(ctx, s)
}

// MoveAtCursor applies action at the session's cursor.
func (p *Play) MoveAtCursor(ctx context.Context, s *Session, action Action) (GameResponse, error) {
	col, row := s.Cursor()
	return p.Move(ctx, s, action, col, row)
}

// PointAt moves the cursor to the cell under (x, y) on a width x height area.
func (p *Play) PointAt(s *Session, x, y, width, height float64) CellRef {
	ptr := input.Pointer{Width: width, Height: height, Columns: s.Board.Columns(), Rows: s.Board.Rows()}
	col, row := ptr.Cell(x, y)
	s.setCursor(col, row)
	return CellRef{Col: col, Row: row}
}

// Listen reveals at the cursor when samples are loud enough. It reports the
// measured level and whether a reveal was triggered.
func (p *Play) Listen(ctx context.Context, s *Session, samples []int16) (float64, bool, GameResponse) {
	level := input.Loudness(samples)
	if level <= p.thresholdDB {
		return level, false, view(s)
	}
	col, row := s.Cursor()
	return level, true, p.apply(ctx, s, ActionReveal, col, row)
}

func (p *Play) settle(ctx context.Context, s *Session) GameResponse {
	resp := view(s)
	if resp.State == minesweeper.Playing.String() {
		p.broker.Publish(s.ID, GameEvent{Type: eventState, Game: &resp})
		return resp
	}

	s.recorded.Do(func() {
		p.record(context.WithoutCancel(ctx), s)
	})
	p.broker.Publish(s.ID, GameEvent{Type: eventFinished, Game: &resp})
	return resp
}

func (p *Play) record(ctx context.Context, s *Session) {
	b := s.Board
	started, _ := b.StartedAt()
	ended, _ := b.EndedAt()
	r := Result{
		ID:             s.ID,
		Columns:        b.Columns(),
		Rows:           b.Rows(),
		Mines:          b.Mines(),
		Outcome:        b.State().String(),
		ElapsedSeconds: b.ElapsedSeconds(),
		Revealed:       b.RevealedCount(),
		Flagged:        b.FlaggedCount(),
		StartedAt:      started,
		EndedAt:        ended,
	}

	p.logger.Info("game finished",
		"game_id", r.ID,
		"outcome", r.Outcome,
		"elapsed_seconds", r.ElapsedSeconds,
		"board", fmt.Sprintf("%dx%d/%d", r.Columns, r.Rows, r.Mines),
	)

	if err := p.results.SaveResult(ctx, r); err != nil {
		p.logger.Error("saving result failed", "game_id", r.ID, "error", err)
	}
	if r.Outcome != minesweeper.Won.String() {
		return
	}
	if err := p.leaders.RecordWin(ctx, r); err != nil {
		p.logger.Error("recording win failed", "game_id", r.ID, "error", err)
	}
}

// view renders a session for clients. Mines stay hidden until the game ends.
func view(s *Session) GameResponse {
	snap := s.Board.Snapshot()
	col, row := s.Cursor()

	cells := make([][]CellView, snap.Rows)
	for r, line := range snap.Tiles {
		cells[r] = make([]CellView, snap.Columns)
		for c, t := range line {
			v := CellView{State: t.Visibility().String()}
			if t.Visibility() == minesweeper.Revealed {
				if t.HasMine() {
					v.Mine = true
				} else {
					v.Count = t.AdjacentMines()
				}
			}
			if snap.State.Terminal() && t.HasMine() {
				v.Mine = true
			}
			cells[r][c] = v
		}
	}

	return GameResponse{
		ID:             s.ID,
		Columns:        snap.Columns,
		Rows:           snap.Rows,
		Mines:          snap.Mines,
		State:          snap.State.String(),
		Banner:         render.Banner(snap.State),
		Flagged:        snap.Flagged,
		Revealed:       snap.Revealed,
		MinesRemaining: snap.Mines - snap.Flagged,
		ElapsedSeconds: snap.Elapsed,
		Cursor:         CellRef{Col: col, Row: row},
		Cells:          cells,
	}
}
