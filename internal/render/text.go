// Package render draws board snapshots as plain text.
package render

import (
	"strconv"
	"strings"

	"github.com/playperu/minesweeper/internal/minesweeper"
)

// Text draws one line per row: X hidden, F flagged, * a revealed mine and
// the adjacent-mine count for any other revealed tile.
func Text(s minesweeper.Snapshot) string {
	var sb strings.Builder
	sb.Grow((s.Columns + 1) * s.Rows)
	for _, line := range s.Tiles {
		for _, t := range line {
			sb.WriteString(glyph(t))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(t minesweeper.Tile) string {
	switch t.Visibility() {
	case minesweeper.Hidden:
		return "X"
	case minesweeper.Flagged:
		return "F"
	}
	if t.HasMine() {
		return "*"
	}
	return strconv.Itoa(t.AdjacentMines())
}

// Banner is the headline shown over a finished board.
func Banner(state minesweeper.State) string {
	switch state {
	case minesweeper.Lost:
		return "BOOM!"
	case minesweeper.Won:
		return "CLEAR!"
	default:
		return ""
	}
}
