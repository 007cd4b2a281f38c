// Package favorites persists per-user saved listings in SQLite.
package favorites

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/catalog"
	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
	"log/slog"
)

// Record is a denormalized snapshot of a listing at save time. Later
// catalog reloads do not affect saved favorites.
type Record struct {
	ID       int64  `db:"id"`
	UserID   string `db:"user_id"`
	Title    string `db:"title"`
	Price    string `db:"price"`
	Bedrooms string `db:"bedrooms"`
	Location string `db:"location"`
	URL      string `db:"url"`
	ImageURL string `db:"image_url"`
}

// Store provides durable favorites operations scoped by user id.
// Every mutation is committed before the call returns.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps the given database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Add appends a snapshot of the listing to the user's favorites.
// Duplicates are not rejected: saving the same listing twice stores two
// rows, which RemoveByIdentity later deletes together.
func (s *Store) Add(ctx context.Context, userID string, l catalog.Listing) error {
	const q = `INSERT INTO favorites (user_id, title, price, bedrooms, location, url, image_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		userID, l.Title, strconv.Itoa(l.Price), l.Bedrooms, l.Location, l.URL, l.ImageURL,
	)
	if err != nil {
		logger.Error(ctx, "favorites", "add.fail",
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("favorites add: %w", err)
	}
	logger.Debug(ctx, "favorites", "add.ok",
		slog.String("listing_id", catalog.Identity(l.URL)),
	)
	return nil
}

// List returns the user's favorites in insertion order.
func (s *Store) List(ctx context.Context, userID string) ([]Record, error) {
	const q = `SELECT id, user_id, title, price, bedrooms, location, url, image_url
	           FROM favorites WHERE user_id = ? ORDER BY id`
	var records []Record
	if err := s.db.SelectContext(ctx, &records, q, userID); err != nil {
		return nil, fmt.Errorf("favorites list: %w", err)
	}
	return records, nil
}

// RemoveByIdentity deletes every record of the user whose stored URL has
// the given identity, duplicates included, in one transaction. It
// reports whether at least one record was removed.
func (s *Store) RemoveByIdentity(ctx context.Context, userID, identity string) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("favorites remove: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var urls []string
	if err := tx.SelectContext(ctx, &urls,
		`SELECT DISTINCT url FROM favorites WHERE user_id = ?`, userID); err != nil {
		return false, fmt.Errorf("favorites remove: scan: %w", err)
	}

	removed := false
	for _, url := range urls {
		if catalog.Identity(url) != identity {
			continue
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM favorites WHERE user_id = ? AND url = ?`, userID, url)
		if err != nil {
			return false, fmt.Errorf("favorites remove: delete: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			removed = true
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("favorites remove: commit: %w", err)
	}

	logger.Debug(ctx, "favorites", "remove",
		slog.String("listing_id", identity),
		slog.Bool("removed", removed),
	)
	return removed, nil
}

// Count returns how many favorites the user has saved.
func (s *Store) Count(ctx context.Context, userID string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ?`, userID); err != nil {
		return 0, fmt.Errorf("favorites count: %w", err)
	}
	return n, nil
}
