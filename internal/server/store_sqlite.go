package server

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const timeLayout = "2006-01-02T15:04:05.000Z"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) SaveResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (id, board_columns, board_rows, board_mines, outcome,
			elapsed_seconds, revealed, flagged, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, r.ID, r.Columns, r.Rows, r.Mines, r.Outcome,
		r.ElapsedSeconds, r.Revealed, r.Flagged,
		r.StartedAt.UTC().Format(timeLayout), r.EndedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("saving result %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLiteStore) RecentResults(ctx context.Context, limit int) ([]Result, error) {
	return s.query(ctx, `
		SELECT id, board_columns, board_rows, board_mines, outcome,
			elapsed_seconds, revealed, flagged, started_at, ended_at
		FROM results
		ORDER BY ended_at DESC, id
		LIMIT ?
	`, limit)
}

func (s *SQLiteStore) FastestWins(ctx context.Context, columns, rows, mines, limit int) ([]Result, error) {
	return s.query(ctx, `
		SELECT id, board_columns, board_rows, board_mines, outcome,
			elapsed_seconds, revealed, flagged, started_at, ended_at
		FROM results
		WHERE board_columns = ? AND board_rows = ? AND board_mines = ? AND outcome = 'won'
		ORDER BY elapsed_seconds, ended_at, id
		LIMIT ?
	`, columns, rows, mines, limit)
}

func (s *SQLiteStore) PurgeResults(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM results`)
	if err != nil {
		return 0, fmt.Errorf("purging results: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var started, ended string
		if err := rows.Scan(&r.ID, &r.Columns, &r.Rows, &r.Mines, &r.Outcome,
			&r.ElapsedSeconds, &r.Revealed, &r.Flagged, &started, &ended); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing started_at of result %s: %w", r.ID, err)
		}
		if r.EndedAt, err = time.Parse(timeLayout, ended); err != nil {
			return nil, fmt.Errorf("parsing ended_at of result %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
