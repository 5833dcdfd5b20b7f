// Package pipeline wires the venue clients, the matching engine, and the
// persistence layers into repeating scan cycles.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"arbscan/internal/arbitrage"
	"arbscan/internal/domain"
	"arbscan/internal/notify"
)

// ListingFetcher retrieves the current listing snapshot from one venue.
type ListingFetcher interface {
	Venue() domain.Venue
	FetchListings(ctx context.Context, maxListings int) ([]domain.MarketListing, error)
}

// SnapshotArchiver writes one venue's raw snapshot to cold storage.
type SnapshotArchiver interface {
	ArchiveSnapshot(ctx context.Context, venue domain.Venue, listings []domain.MarketListing, at time.Time) error
}

// scanLockTTL bounds how long a crashed instance can hold the scan lock.
const scanLockTTL = 10 * time.Minute

// ScannerConfig holds the per-cycle tunables.
type ScannerConfig struct {
	MinRoi              float64
	MaxListingsPerVenue int
}

// Scanner executes scan cycles: fetch all venues concurrently, run the
// matching engine over the combined snapshot, then persist, notify, and
// archive the results. The cache, store, notifier, and archiver are all
// optional; a nil dependency simply skips that step.
type Scanner struct {
	fetchers []ListingFetcher
	cfg      ScannerConfig

	cache    domain.ListingCache
	limiter  domain.RateLimiter
	locks    domain.LockManager
	store    domain.OpportunityStore
	notifier *notify.Notifier
	archiver SnapshotArchiver

	logger *slog.Logger
}

// NewScanner creates a Scanner over the given venue fetchers.
func NewScanner(fetchers []ListingFetcher, cfg ScannerConfig, logger *slog.Logger) *Scanner {
	return &Scanner{
		fetchers: fetchers,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "scanner")),
	}
}

// WithCache stores each venue snapshot in the listing cache after fetching.
func (s *Scanner) WithCache(cache domain.ListingCache) *Scanner { s.cache = cache; return s }

// WithRateLimiter paces venue fetches through a shared rate limiter.
func (s *Scanner) WithRateLimiter(rl domain.RateLimiter) *Scanner { s.limiter = rl; return s }

// WithLockManager serialises scan cycles across scanner instances.
func (s *Scanner) WithLockManager(lm domain.LockManager) *Scanner { s.locks = lm; return s }

// WithStore persists detected opportunities.
func (s *Scanner) WithStore(store domain.OpportunityStore) *Scanner { s.store = store; return s }

// WithNotifier sends an alert when a cycle detects opportunities.
func (s *Scanner) WithNotifier(n *notify.Notifier) *Scanner { s.notifier = n; return s }

// WithArchiver uploads raw venue snapshots to cold storage.
func (s *Scanner) WithArchiver(a SnapshotArchiver) *Scanner { s.archiver = a; return s }

// RunCycle executes one scan cycle and returns the ranked opportunities.
// A venue whose fetch fails is logged and skipped; the cycle proceeds with
// the remaining venues. When another instance holds the scan lock the cycle
// is skipped and RunCycle returns nil.
func (s *Scanner) RunCycle(ctx context.Context) ([]domain.ArbitrageOpportunity, error) {
	if s.locks != nil {
		unlock, err := s.locks.Acquire(ctx, "scan", scanLockTTL)
		if err != nil {
			if errors.Is(err, domain.ErrLockHeld) {
				s.logger.InfoContext(ctx, "scan lock held, skipping cycle")
				return nil, nil
			}
			return nil, fmt.Errorf("pipeline: acquire scan lock: %w", err)
		}
		defer unlock()
	}

	started := time.Now().UTC()
	listings := s.fetchAll(ctx)
	if len(listings) == 0 {
		s.logger.WarnContext(ctx, "no listings fetched, skipping cycle")
		return nil, nil
	}

	opps := arbitrage.FindOpportunities(listings, s.cfg.MinRoi)
	s.logger.InfoContext(ctx, "scan cycle complete",
		slog.Int("listings", len(listings)),
		slog.Int("opportunities", len(opps)),
		slog.Duration("elapsed", time.Since(started)),
	)

	if s.store != nil && len(opps) > 0 {
		if err := s.store.InsertBatch(ctx, opps); err != nil {
			return opps, fmt.Errorf("pipeline: persist opportunities: %w", err)
		}
	}

	if s.notifier != nil && len(opps) > 0 {
		title, message := notify.OpportunityAlert(opps)
		if err := s.notifier.Notify(ctx, notify.EventOpportunity, title, message); err != nil {
			s.logger.ErrorContext(ctx, "opportunity alert failed", slog.String("error", err.Error()))
		}
	}

	return opps, nil
}

// fetchAll fetches every venue concurrently and returns the combined
// snapshot. Each successful snapshot is cached and archived as a side effect.
func (s *Scanner) fetchAll(ctx context.Context) []domain.MarketListing {
	var (
		mu       sync.Mutex
		combined []domain.MarketListing
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range s.fetchers {
		g.Go(func() error {
			venue := f.Venue()

			if s.limiter != nil {
				if err := s.limiter.Wait(gctx, "fetch:"+string(venue)); err != nil {
					s.logger.ErrorContext(gctx, "rate limit wait failed",
						slog.String("venue", string(venue)),
						slog.String("error", err.Error()),
					)
					return nil
				}
			}

			listings, err := f.FetchListings(gctx, s.cfg.MaxListingsPerVenue)
			if err != nil {
				s.logger.ErrorContext(gctx, "venue fetch failed",
					slog.String("venue", string(venue)),
					slog.String("error", err.Error()),
				)
				if s.notifier != nil {
					title, message := notify.ScanErrorAlert(venue, err)
					if nerr := s.notifier.Notify(gctx, notify.EventScanError, title, message); nerr != nil {
						s.logger.ErrorContext(gctx, "scan error alert failed",
							slog.String("venue", string(venue)),
							slog.String("error", nerr.Error()),
						)
					}
				}
				return nil
			}

			s.logger.InfoContext(gctx, "venue fetched",
				slog.String("venue", string(venue)),
				slog.Int("listings", len(listings)),
			)

			if s.cache != nil {
				if err := s.cache.Put(gctx, venue, listings); err != nil {
					s.logger.ErrorContext(gctx, "snapshot cache put failed",
						slog.String("venue", string(venue)),
						slog.String("error", err.Error()),
					)
				}
			}
			if s.archiver != nil {
				if err := s.archiver.ArchiveSnapshot(gctx, venue, listings, time.Now().UTC()); err != nil {
					s.logger.ErrorContext(gctx, "snapshot archive failed",
						slog.String("venue", string(venue)),
						slog.String("error", err.Error()),
					)
				}
			}

			mu.Lock()
			combined = append(combined, listings...)
			mu.Unlock()
			return nil
		})
	}

	// Fetch errors are absorbed per venue, so Wait only fails on context
	// cancellation.
	_ = g.Wait()
	return combined
}

// RunLoop runs scan cycles on a repeating interval until the context is
// cancelled. The first cycle runs immediately.
func (s *Scanner) RunLoop(ctx context.Context, interval time.Duration) error {
	if _, err := s.RunCycle(ctx); err != nil {
		s.logger.Error("scan cycle failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scanner loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.RunCycle(ctx); err != nil {
				s.logger.Error("scan cycle failed", slog.String("error", err.Error()))
			}
		}
	}
}
