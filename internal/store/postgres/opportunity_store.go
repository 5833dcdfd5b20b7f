package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"arbscan/internal/domain"
)

// OpportunityStore implements domain.OpportunityStore using PostgreSQL.
type OpportunityStore struct {
	pool *pgxpool.Pool
}

// NewOpportunityStore creates a new OpportunityStore backed by the given pool.
func NewOpportunityStore(pool *pgxpool.Pool) *OpportunityStore {
	return &OpportunityStore{pool: pool}
}

const oppSelectCols = `id,
	a_venue, a_market_id, a_title, a_yes_price, a_no_price, a_volume, a_url,
	b_venue, b_market_id, b_title, b_yes_price, b_no_price, b_volume, b_url,
	scenario, combined_cost, profit, roi, net_roi, fee_a, fee_b,
	match_score, match_reason, detected_at`

const oppInsertQuery = `
	INSERT INTO opportunities (
		id,
		a_venue, a_market_id, a_title, a_yes_price, a_no_price, a_volume, a_url,
		b_venue, b_market_id, b_title, b_yes_price, b_no_price, b_volume, b_url,
		scenario, combined_cost, profit, roi, net_roi, fee_a, fee_b,
		match_score, match_reason, detected_at
	) VALUES (
		$1,
		$2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22,
		$23, $24, $25
	)`

func oppInsertArgs(opp domain.ArbitrageOpportunity) []any {
	return []any{
		opp.ID,
		opp.A.Venue, opp.A.ID, opp.A.Title, opp.A.YesPrice, opp.A.NoPrice, opp.A.Volume, opp.A.URL,
		opp.B.Venue, opp.B.ID, opp.B.Title, opp.B.YesPrice, opp.B.NoPrice, opp.B.Volume, opp.B.URL,
		opp.Scenario, opp.CombinedCost, opp.Profit, opp.Roi, opp.NetRoi, opp.FeeA, opp.FeeB,
		opp.MatchScore, opp.MatchReason, opp.DetectedAt,
	}
}

func scanOpp(row pgx.Row) (domain.ArbitrageOpportunity, error) {
	var opp domain.ArbitrageOpportunity
	err := row.Scan(
		&opp.ID,
		&opp.A.Venue, &opp.A.ID, &opp.A.Title, &opp.A.YesPrice, &opp.A.NoPrice, &opp.A.Volume, &opp.A.URL,
		&opp.B.Venue, &opp.B.ID, &opp.B.Title, &opp.B.YesPrice, &opp.B.NoPrice, &opp.B.Volume, &opp.B.URL,
		&opp.Scenario, &opp.CombinedCost, &opp.Profit, &opp.Roi, &opp.NetRoi, &opp.FeeA, &opp.FeeB,
		&opp.MatchScore, &opp.MatchReason, &opp.DetectedAt,
	)
	return opp, err
}

// Insert stores a single detected opportunity.
func (s *OpportunityStore) Insert(ctx context.Context, opp domain.ArbitrageOpportunity) error {
	if _, err := s.pool.Exec(ctx, oppInsertQuery, oppInsertArgs(opp)...); err != nil {
		return fmt.Errorf("postgres: insert opportunity %s: %w", opp.ID, err)
	}
	return nil
}

// InsertBatch stores all opportunities from one scan cycle in a single
// round trip.
func (s *OpportunityStore) InsertBatch(ctx context.Context, opps []domain.ArbitrageOpportunity) error {
	if len(opps) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range opps {
		batch.Queue(oppInsertQuery, oppInsertArgs(opps[i])...)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range opps {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("postgres: insert opportunity batch item %s: %w", opps[i].ID, err)
		}
	}
	return nil
}

// GetByID returns a single opportunity.
// It returns domain.ErrNotFound when no row matches.
func (s *OpportunityStore) GetByID(ctx context.Context, id string) (domain.ArbitrageOpportunity, error) {
	query := `SELECT ` + oppSelectCols + ` FROM opportunities WHERE id = $1`

	opp, err := scanOpp(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ArbitrageOpportunity{}, domain.ErrNotFound
		}
		return domain.ArbitrageOpportunity{}, fmt.Errorf("postgres: get opportunity %s: %w", id, err)
	}
	return opp, nil
}

// ListRecent returns opportunities ordered by detection time descending.
func (s *OpportunityStore) ListRecent(ctx context.Context, opts domain.ListOpts) ([]domain.ArbitrageOpportunity, error) {
	query := `SELECT ` + oppSelectCols + ` FROM opportunities`
	args := []any{}

	if opts.Since != nil {
		args = append(args, *opts.Since)
		query += fmt.Sprintf(" WHERE detected_at >= $%d", len(args))
	}
	query += " ORDER BY detected_at DESC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list recent opportunities: %w", err)
	}
	defer rows.Close()

	var opps []domain.ArbitrageOpportunity
	for rows.Next() {
		opp, err := scanOpp(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan opportunity: %w", err)
		}
		opps = append(opps, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list recent opportunities rows: %w", err)
	}
	return opps, nil
}

// ListBefore returns opportunities detected strictly before the cutoff,
// ordered oldest first for archival.
func (s *OpportunityStore) ListBefore(ctx context.Context, before time.Time) ([]domain.ArbitrageOpportunity, error) {
	query := `SELECT ` + oppSelectCols + ` FROM opportunities
		WHERE detected_at < $1 ORDER BY detected_at ASC`

	rows, err := s.pool.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("postgres: list opportunities before %s: %w", before, err)
	}
	defer rows.Close()

	var opps []domain.ArbitrageOpportunity
	for rows.Next() {
		opp, err := scanOpp(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan opportunity: %w", err)
		}
		opps = append(opps, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list opportunities before rows: %w", err)
	}
	return opps, nil
}

// Compile-time interface check.
var _ domain.OpportunityStore = (*OpportunityStore)(nil)
