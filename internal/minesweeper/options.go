package minesweeper

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Source draws mine coordinates. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Placement decides what happens when a sampled coordinate already holds a mine.
type Placement int

const (
	// PlaceUnique resamples on collision so the board holds exactly the
	// requested number of mines.
	PlaceUnique Placement = iota
	// PlaceWithReplacement arms whatever is sampled, duplicates included.
	// The board may then hold fewer mines than requested while the win
	// condition still compares against the requested count.
	PlaceWithReplacement
)

func (p Placement) String() string {
	switch p {
	case PlaceUnique:
		return "unique"
	case PlaceWithReplacement:
		return "replace"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// ParsePlacement accepts the names produced by Placement.String.
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "unique":
		return PlaceUnique, nil
	case "replace":
		return PlaceWithReplacement, nil
	}
	return 0, fmt.Errorf("unknown placement %q", s)
}

// FlagPolicy controls how Flag updates the flagged counter.
type FlagPolicy int

const (
	// FlagToggle flips Hidden and Flagged, counting up and down.
	FlagToggle FlagPolicy = iota
	// FlagLiteral always forces Flagged and always counts up, so flagging the
	// same tile twice counts it twice. There is no way to unflag.
	FlagLiteral
)

func (p FlagPolicy) String() string {
	switch p {
	case FlagToggle:
		return "toggle"
	case FlagLiteral:
		return "literal"
	default:
		return fmt.Sprintf("FlagPolicy(%d)", int(p))
	}
}

func ParseFlagPolicy(s string) (FlagPolicy, error) {
	switch s {
	case "toggle":
		return FlagToggle, nil
	case "literal":
		return FlagLiteral, nil
	}
	return 0, fmt.Errorf("unknown flag policy %q", s)
}

type options struct {
	source    Source
	clock     func() time.Time
	placement Placement
	flag      FlagPolicy
}

type Option func(*options)

func WithSource(src Source) Option {
	return func(o *options) { o.source = src }
}

// WithSeed places mines from a PCG generator seeded with seed. Two boards
// built with the same dimensions, options and seed have identical layouts.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.source = rand.New(rand.NewPCG(seed, seed)) }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

func WithPlacement(p Placement) Option {
	return func(o *options) { o.placement = p }
}

func WithFlagPolicy(p FlagPolicy) Option {
	return func(o *options) { o.flag = p }
}

func defaultOptions() options {
	seed := uint64(time.Now().UnixNano())
	return options{
		source:    rand.New(rand.NewPCG(seed, seed>>1)),
		clock:     time.Now,
		placement: PlaceUnique,
		flag:      FlagToggle,
	}
}
