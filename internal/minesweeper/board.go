// Package minesweeper implements the board and session state machine:
// mine placement, flood-fill reveal, flagging, win/loss and the game timer.
// It has no external dependencies and performs no I/O.
package minesweeper

import (
	"fmt"
	"sync"
	"time"
)

type State int

const (
	Playing State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further move can change the game.
func (s State) Terminal() bool { return s != Playing }

type offset struct{ dc, dr int }

// neighbours is the fixed visiting order for counting and flood fill.
var neighbours = [8]offset{
	{+1, +1}, {+1, 0}, {+1, -1},
	{0, +1}, {0, -1},
	{-1, +1}, {-1, 0}, {-1, -1},
}

// Board is one game. Columns and rows are addressed 1-based; the backing
// grid carries a one-cell sentinel ring so neighbour arithmetic never needs a
// bounds check. All methods are safe for concurrent use.
type Board struct {
	mu sync.RWMutex

	columns, rows int
	mines         int
	placed        int
	tiles         []Tile

	flagged  int
	revealed int
	state    State

	start, end time.Time
	started    bool
	ended      bool

	now  func() time.Time
	flag FlagPolicy
}

// New builds a board and places its mines. It returns a *ConfigError when the
// dimensions are not positive or the mines would fill the whole board.
func New(columns, rows, mines int, opts ...Option) (*Board, error) {
	if err := Validate(columns, rows, mines); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Board{
		columns: columns,
		rows:    rows,
		mines:   mines,
		tiles:   make([]Tile, (columns+2)*(rows+2)),
		now:     o.clock,
		flag:    o.flag,
	}
	b.placeMines(o.source, o.placement)
	return b, nil
}

func (b *Board) placeMines(src Source, placement Placement) {
	for i := 0; i < b.mines; i++ {
		row := src.IntN(b.rows) + 1
		col := src.IntN(b.columns) + 1
		t := b.tile(col, row)
		if t.mine {
			if placement == PlaceUnique {
				i--
				continue
			}
		} else {
			b.placed++
		}
		t.ArmMine()
		for _, d := range neighbours {
			b.tile(col+d.dc, row+d.dr).IncrementAdjacent()
		}
	}
}

func (b *Board) tile(col, row int) *Tile {
	return &b.tiles[row*(b.columns+2)+col]
}

func (b *Board) inBounds(col, row int) bool {
	return col >= 1 && col <= b.columns && row >= 1 && row <= b.rows
}

func (b *Board) touch() {
	if !b.started {
		b.start = b.now()
		b.started = true
	}
}

func (b *Board) finish(s State) {
	b.state = s
	if !b.ended {
		b.end = b.now()
		b.ended = true
	}
}

func (b *Board) won() bool {
	return b.flagged == b.mines && b.revealed+b.flagged == b.columns*b.rows
}

// Reveal uncovers the tile at (col, row). Out-of-range coordinates, tiles that
// are already flagged or revealed, and finished games are ignored. Revealing a
// tile with no adjacent mines keeps uncovering its neighbours until the
// region is bounded by numbered tiles.
func (b *Board) Reveal(col, row int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Terminal() || !b.inBounds(col, row) || b.tile(col, row).visibility != Hidden {
		return
	}
	b.touch()

	type cell struct{ col, row int }
	work := []cell{{col, row}}
	for len(work) > 0 {
		c := work[len(work)-1]
		work = work[:len(work)-1]

		if !b.inBounds(c.col, c.row) {
			continue
		}
		t := b.tile(c.col, c.row)
		if t.visibility != Hidden {
			continue
		}

		t.Reveal()
		b.revealed++

		if t.mine {
			b.finish(Lost)
			return
		}
		if b.won() {
			b.finish(Won)
			return
		}
		if t.adjacent == 0 {
			for _, d := range neighbours {
				work = append(work, cell{c.col + d.dc, c.row + d.dr})
			}
		}
	}
}

// Flag marks or unmarks the tile at (col, row) according to the board's
// FlagPolicy. Revealed tiles, out-of-range coordinates and finished games are
// ignored.
func (b *Board) Flag(col, row int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state.Terminal() || !b.inBounds(col, row) {
		return
	}
	t := b.tile(col, row)
	if t.visibility == Revealed {
		return
	}
	b.touch()

	switch b.flag {
	case FlagLiteral:
		t.Flag()
		b.flagged++
	default:
		if t.visibility == Flagged {
			t.Unflag()
			b.flagged--
		} else {
			t.Flag()
			b.flagged++
		}
	}
}

func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

func (b *Board) FlaggedCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.flagged
}

func (b *Board) RevealedCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revealed
}

func (b *Board) Columns() int { return b.columns }
func (b *Board) Rows() int { return b.rows }

// Mines is the requested mine count used by the win condition.
func (b *Board) Mines() int { return b.mines }

// MinesPlaced is the number of distinct tiles holding a mine. It is lower
// than Mines only under PlaceWithReplacement when samples collided.
func (b *Board) MinesPlaced() int { return b.placed }

// TileAt returns a copy of the tile at (col, row) and false when the
// coordinates are off the board.
func (b *Board) TileAt(col, row int) (Tile, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.inBounds(col, row) {
		return Tile{}, false
	}
	return *b.tile(col, row), true
}

// ElapsedSeconds is zero before the first move, counts whole seconds while
// playing and stays frozen once the game has ended.
func (b *Board) ElapsedSeconds() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.elapsed()
}

func (b *Board) elapsed() int64 {
	if !b.started {
		return 0
	}
	until := b.end
	if !b.ended {
		until = b.now()
	}
	d := until.Sub(b.start)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

func (b *Board) StartedAt() (time.Time, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.start, b.started
}

func (b *Board) EndedAt() (time.Time, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.end, b.ended
}

// Snapshot is a point-in-time copy of a board for rendering.
type Snapshot struct {
	Columns  int
	Rows     int
	Mines    int
	Flagged  int
	Revealed int
	State    State
	Elapsed  int64
	// Tiles is row-major: Tiles[row-1][col-1].
	Tiles [][]Tile
}

// At returns the tile at 1-based (col, row). The coordinates must be on the board.
func (s Snapshot) At(col, row int) Tile {
	return s.Tiles[row-1][col-1]
}

func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tiles := make([][]Tile, b.rows)
	for row := 1; row <= b.rows; row++ {
		line := make([]Tile, b.columns)
		for col := 1; col <= b.columns; col++ {
			line[col-1] = *b.tile(col, row)
		}
		tiles[row-1] = line
	}
	return Snapshot{
		Columns:  b.columns,
		Rows:     b.rows,
		Mines:    b.mines,
		Flagged:  b.flagged,
		Revealed: b.revealed,
		State:    b.state,
		Elapsed:  b.elapsed(),
		Tiles:    tiles,
	}
}
