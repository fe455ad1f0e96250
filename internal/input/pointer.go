// Package input turns raw player signals into board coordinates and actions:
// a pointer position on a rendered grid, and microphone loudness.
package input

import "math"

// Pointer maps positions on a Width x Height drawing area onto a
// Columns x Rows board.
type Pointer struct {
	Width   float64
	Height  float64
	Columns int
	Rows    int
}

// Cell returns the 1-based cell under (x, y), clamped to the board so that
// positions on or past the edge land on the nearest border cell.
func (p Pointer) Cell(x, y float64) (col, row int) {
	return axis(x, p.Width, p.Columns), axis(y, p.Height, p.Rows)
}

func axis(v, extent float64, cells int) int {
	if cells <= 0 {
		return 0
	}
	if extent <= 0 || math.IsNaN(v) {
		return 1
	}
	i := int(math.Floor(v/(extent/float64(cells)))) + 1
	return min(max(i, 1), cells)
}
