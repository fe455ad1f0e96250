package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/playperu/minesweeper/internal/minesweeper"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/minesweeper.db"`
	RedisURL string     `env:"REDIS_URL"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// Every board, the default included, must fit in MAX_CELLS cells.
	DefaultColumns int `env:"DEFAULT_COLUMNS" envDefault:"9"`
	DefaultRows    int `env:"DEFAULT_ROWS" envDefault:"9"`
	DefaultMines   int `env:"DEFAULT_MINES" envDefault:"10"`
	MaxCells       int `env:"MAX_CELLS" envDefault:"4096"`

	Placement  string `env:"PLACEMENT" envDefault:"unique"`
	FlagPolicy string `env:"FLAG_POLICY" envDefault:"toggle"`

	LoudnessThresholdDB float64 `env:"LOUDNESS_THRESHOLD_DB" envDefault:"-30"`

	GameIdleTTL   time.Duration `env:"GAME_IDLE_TTL" envDefault:"1h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`

	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the default board can be built and the policy names
// are known.
func (c Config) Validate() error {
	if err := minesweeper.Validate(c.DefaultColumns, c.DefaultRows, c.DefaultMines); err != nil {
		return fmt.Errorf("default board: %w", err)
	}
	if c.MaxCells <= 0 {
		return fmt.Errorf("MAX_CELLS must be positive, got %d", c.MaxCells)
	}
	if minesweeper.CellsExceed(c.DefaultColumns, c.DefaultRows, c.MaxCells) {
		return fmt.Errorf("default board %dx%d exceeds MAX_CELLS %d", c.DefaultColumns, c.DefaultRows, c.MaxCells)
	}
	if _, err := minesweeper.ParsePlacement(c.Placement); err != nil {
		return err
	}
	if _, err := minesweeper.ParseFlagPolicy(c.FlagPolicy); err != nil {
		return err
	}
	if c.SweepInterval <= 0 {
		return errors.New("SWEEP_INTERVAL must be positive")
	}
	return nil
}

// BoardOptions translates the policy settings into engine options.
func (c Config) BoardOptions() []minesweeper.Option {
	placement, _ := minesweeper.ParsePlacement(c.Placement)
	flag, _ := minesweeper.ParseFlagPolicy(c.FlagPolicy)
	return []minesweeper.Option{
		minesweeper.WithPlacement(placement),
		minesweeper.WithFlagPolicy(flag),
	}
}
