package minesweeper

import "fmt"

type Visibility int

const (
	Hidden Visibility = iota
	Flagged
	Revealed
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Tile is a single cell. Mine presence and the adjacent count are fixed once
// the board is built; only visibility changes during play.
type Tile struct {
	mine       bool
	adjacent   int
	visibility Visibility
}

func (t *Tile) ArmMine() {
	t.mine = true
}

func (t *Tile) IncrementAdjacent() {
	t.adjacent++
}

// Flag forces the tile to Flagged regardless of its current visibility.
func (t *Tile) Flag() {
	t.visibility = Flagged
}

// Unflag returns a Flagged tile to Hidden. Other states are left alone.
func (t *Tile) Unflag() {
	if t.visibility == Flagged {
		t.visibility = Hidden
	}
}

// Reveal forces the tile to Revealed.
func (t *Tile) Reveal() {
	t.visibility = Revealed
}

func (t Tile) HasMine() bool { return t.mine }
func (t Tile) AdjacentMines() int { return t.adjacent }
func (t Tile) Visibility() Visibility { return t.visibility }
