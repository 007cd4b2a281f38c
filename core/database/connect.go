package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
	"log/slog"
)

// Open opens the SQLite database at path, creating the parent directory
// if needed, and verifies connectivity. WAL mode and a busy timeout keep
// concurrent per-user writes from tripping over each other.
func Open(path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db open: empty path")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("db open: create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	took := time.Since(start)
	if err != nil {
		logger.Error(context.Background(), "db", "db.open",
			slog.String("driver", "sqlite3"),
			slog.String("path", path),
			slog.Duration("duration", logger.RoundMS(took)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("db open: %w", err)
	}

	// SQLite gains nothing from a connection pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	logger.Info(context.Background(), "db", "db.ready",
		slog.String("driver", "sqlite3"),
		slog.String("path", path),
		slog.Duration("duration", logger.RoundMS(took)),
	)

	return db, nil
}
