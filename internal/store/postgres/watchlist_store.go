package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"arbscan/internal/domain"
)

// WatchlistStore implements domain.WatchlistStore using PostgreSQL.
type WatchlistStore struct {
	pool *pgxpool.Pool
}

// NewWatchlistStore creates a new WatchlistStore backed by the given pool.
func NewWatchlistStore(pool *pgxpool.Pool) *WatchlistStore {
	return &WatchlistStore{pool: pool}
}

const watchlistSelectCols = `id,
	a_venue, a_market_id, a_title,
	b_venue, b_market_id, b_title,
	scenario, investment, gross_roi, net_roi, created_at`

func scanWatchlistEntry(row pgx.Row) (domain.WatchlistEntry, error) {
	var e domain.WatchlistEntry
	err := row.Scan(
		&e.ID,
		&e.AVenue, &e.AMarketID, &e.ATitle,
		&e.BVenue, &e.BMarketID, &e.BTitle,
		&e.Scenario, &e.Investment, &e.GrossRoi, &e.NetRoi, &e.CreatedAt,
	)
	return e, err
}

// Create pins a new pair. It returns domain.ErrAlreadyExists when the same
// pair of markets is already on the watchlist.
func (s *WatchlistStore) Create(ctx context.Context, entry domain.WatchlistEntry) error {
	const query = `
		INSERT INTO watchlist (
			id,
			a_venue, a_market_id, a_title,
			b_venue, b_market_id, b_title,
			scenario, investment, gross_roi, net_roi, created_at
		) VALUES (
			$1,
			$2, $3, $4,
			$5, $6, $7,
			$8, $9, $10, $11, $12
		)
		ON CONFLICT (a_venue, a_market_id, b_venue, b_market_id) DO NOTHING`

	tag, err := s.pool.Exec(ctx, query,
		entry.ID,
		entry.AVenue, entry.AMarketID, entry.ATitle,
		entry.BVenue, entry.BMarketID, entry.BTitle,
		entry.Scenario, entry.Investment, entry.GrossRoi, entry.NetRoi, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: create watchlist entry %s: %w", entry.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

// GetByID returns a single watchlist entry.
// It returns domain.ErrNotFound when no row matches.
func (s *WatchlistStore) GetByID(ctx context.Context, id string) (domain.WatchlistEntry, error) {
	query := `SELECT ` + watchlistSelectCols + ` FROM watchlist WHERE id = $1`

	entry, err := scanWatchlistEntry(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.WatchlistEntry{}, domain.ErrNotFound
		}
		return domain.WatchlistEntry{}, fmt.Errorf("postgres: get watchlist entry %s: %w", id, err)
	}
	return entry, nil
}

// List returns all watchlist entries, newest first.
func (s *WatchlistStore) List(ctx context.Context) ([]domain.WatchlistEntry, error) {
	query := `SELECT ` + watchlistSelectCols + ` FROM watchlist ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: list watchlist: %w", err)
	}
	defer rows.Close()

	var entries []domain.WatchlistEntry
	for rows.Next() {
		entry, err := scanWatchlistEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan watchlist entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list watchlist rows: %w", err)
	}
	return entries, nil
}

// Delete removes a watchlist entry.
// It returns domain.ErrNotFound when no row matches.
func (s *WatchlistStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM watchlist WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete watchlist entry %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time interface check.
var _ domain.WatchlistStore = (*WatchlistStore)(nil)
