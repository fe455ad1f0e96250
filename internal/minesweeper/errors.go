package minesweeper

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("invalid board configuration")

// ConfigError reports why New rejected its dimensions or mine count.
type ConfigError struct {
	Columns, Rows, Mines int
}

func (e *ConfigError) Error() string {
	switch {
	case e.Columns <= 0:
		return fmt.Sprintf("%v: columns must be positive, got %d", ErrInvalidConfig, e.Columns)
	case e.Rows <= 0:
		return fmt.Sprintf("%v: rows must be positive, got %d", ErrInvalidConfig, e.Rows)
	case e.Mines < 0:
		return fmt.Sprintf("%v: mines must not be negative, got %d", ErrInvalidConfig, e.Mines)
	case !fits(e.Columns, e.Rows):
		return fmt.Sprintf("%v: a %dx%d board cannot be addressed", ErrInvalidConfig, e.Columns, e.Rows)
	default:
		return fmt.Sprintf("%v: %d mines do not fit a %dx%d board", ErrInvalidConfig, e.Mines, e.Columns, e.Rows)
	}
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate reports whether a board of the given size can be built.
func Validate(columns, rows, mines int) error {
	if columns <= 0 || rows <= 0 || mines < 0 || !fits(columns, rows) || mines >= columns*rows {
		return &ConfigError{Columns: columns, Rows: rows, Mines: mines}
	}
	return nil
}

// fits reports whether the grid including its sentinel ring has a length
// that does not overflow int. Both dimensions must be positive.
func fits(columns, rows int) bool {
	if rows > math.MaxInt-2 || columns > math.MaxInt-2 {
		return false
	}
	return columns+2 <= math.MaxInt/(rows+2)
}

// CellsExceed reports whether a columns x rows board has more than limit
// cells, without overflowing.
func CellsExceed(columns, rows, limit int) bool {
	if columns <= 0 || rows <= 0 {
		return false
	}
	return columns > limit/rows
}
