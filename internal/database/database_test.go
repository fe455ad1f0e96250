package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/playperu/minesweeper/internal/database"
)

func TestOpenMemory(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.MemoryPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := (database.Checker{DB: db}).Check(ctx); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "games.db")

	db, err := database.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE scratch (id INTEGER)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
}
