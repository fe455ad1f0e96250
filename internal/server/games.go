package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playperu/minesweeper/internal/minesweeper"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrBoardTooLarge = errors.New("board too large")
)

// Session is one live game: the board plus the player's cursor.
type Session struct {
	ID        string
	Board     *minesweeper.Board
	CreatedAt time.Time

	mu        sync.Mutex
	cursorCol int
	cursorRow int
	lastSeen  time.Time

	recorded sync.Once
}

// Cursor returns the cell the player is pointing at.
func (s *Session) Cursor() (col, row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorCol, s.cursorRow
}

func (s *Session) setCursor(col, row int) {
	s.mu.Lock()
	s.cursorCol, s.cursorRow = col, row
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// GameSettings are the defaults and limits applied to new games. MaxCells
// must be positive; every board is held to it.
type GameSettings struct {
	DefaultColumns int
	DefaultRows    int
	DefaultMines   int
	MaxCells       int
	Options        []minesweeper.Option
}

// NewGame describes a requested board. Zero values fall back to defaults.
type NewGame struct {
	Columns int
	Rows    int
	Mines   *int
	Seed    *uint64
}

// Games holds every live session keyed by id.
type Games struct {
	settings GameSettings
	now      func() time.Time

	mu      sync.RWMutex
	games   map[string]*Session
	onEvict []func(id string)
}

func NewGames(settings GameSettings) *Games {
	return &Games{
		settings: settings,
		now:      time.Now,
		games:    make(map[string]*Session),
	}
}

// Create builds a board for req and registers it under a fresh id.
func (g *Games) Create(req NewGame) (*Session, error) {
	cols, rows, mines := req.Columns, req.Rows, g.settings.DefaultMines
	if cols == 0 && rows == 0 {
		cols, rows = g.settings.DefaultColumns, g.settings.DefaultRows
	}
	if req.Mines != nil {
		mines = *req.Mines
	}
	if minesweeper.CellsExceed(cols, rows, g.settings.MaxCells) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrBoardTooLarge, cols, rows, g.settings.MaxCells)
	}

	clock := func() time.Time { return g.now() }
	opts := append([]minesweeper.Option{minesweeper.WithClock(clock)}, g.settings.Options...)
	if req.Seed != nil {
		opts = append(opts, minesweeper.WithSeed(*req.Seed))
	}
	board, err := minesweeper.New(cols, rows, mines, opts...)
	if err != nil {
		return nil, err
	}

	now := g.now()
	s := &Session{
		ID:        newID(),
		Board:     board,
		CreatedAt: now,
		cursorCol: 1,
		cursorRow: 1,
		lastSeen:  now,
	}

	g.mu.Lock()
	g.games[s.ID] = s
	g.mu.Unlock()
	return s, nil
}

// Get returns the session for id and marks it active.
func (g *Games) Get(id string) (*Session, error) {
	g.mu.RLock()
	s, ok := g.games[id]
	g.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(g.now())
	return s, nil
}

// OnEvict registers fn to run after a session is removed by Delete or Sweep.
// Hooks run outside the registry lock.
func (g *Games) OnEvict(fn func(id string)) {
	g.mu.Lock()
	g.onEvict = append(g.onEvict, fn)
	g.mu.Unlock()
}

func (g *Games) evicted(ids ...string) {
	g.mu.RLock()
	hooks := g.onEvict
	g.mu.RUnlock()
	for _, id := range ids {
		for _, fn := range hooks {
			fn(id)
		}
	}
}

func (g *Games) Delete(id string) error {
	g.mu.Lock()
	if _, ok := g.games[id]; !ok {
		g.mu.Unlock()
		return ErrNotFound
	}
	delete(g.games, id)
	g.mu.Unlock()

	g.evicted(id)
	return nil
}

func (g *Games) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.games)
}

// Sweep drops sessions that have not been touched within ttl.
func (g *Games) Sweep(ttl time.Duration) int {
	cutoff := g.now().Add(-ttl)

	var swept []string
	g.mu.Lock()
	for id, s := range g.games {
		if s.idleSince().Before(cutoff) {
			delete(g.games, id)
			swept = append(swept, id)
		}
	}
	g.mu.Unlock()

	g.evicted(swept...)
	return len(swept)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (g *Games) RunSweeper(ctx context.Context, logger *slog.Logger, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := g.Sweep(ttl); n > 0 {
				logger.Info("swept idle games", "count", n, "remaining", g.Len())
			}
		}
	}
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
