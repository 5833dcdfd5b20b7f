package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"arbscan/internal/domain"
	"arbscan/internal/notify"
	"arbscan/internal/pricing"
)

// CreateWatchParams identifies the pair to pin. Scenario defaults to the
// better of the two directions at creation time when left empty.
type CreateWatchParams struct {
	AVenue     domain.Venue
	AMarketID  string
	BVenue     domain.Venue
	BMarketID  string
	Scenario   domain.Scenario
	Investment float64
}

// WatchStatus is the per-cycle view of a pinned pair. Stale is set when one
// of the legs is missing from the current snapshots, in which case the ROI
// figures carry the values stored at creation time.
type WatchStatus struct {
	Entry    domain.WatchlistEntry
	GrossRoi float64
	NetRoi   float64
	Stale    bool
}

// WatchlistService manages pinned pairs and re-prices them against the
// cached venue snapshots on every refresh.
type WatchlistService struct {
	store    domain.WatchlistStore
	cache    domain.ListingCache
	notifier *notify.Notifier
	// alertNetRoi is the net ROI percent at or above which a refresh
	// triggers an alert.
	alertNetRoi float64
	logger      *slog.Logger
}

// NewWatchlistService creates a WatchlistService. notifier may be nil.
func NewWatchlistService(
	store domain.WatchlistStore,
	cache domain.ListingCache,
	notifier *notify.Notifier,
	alertNetRoi float64,
	logger *slog.Logger,
) *WatchlistService {
	return &WatchlistService{
		store:       store,
		cache:       cache,
		notifier:    notifier,
		alertNetRoi: alertNetRoi,
		logger:      logger.With(slog.String("component", "watchlist_service")),
	}
}

// Create pins a pair. Both legs must be present in the current snapshots so
// that titles and ROI can be recorded; otherwise domain.ErrNotFound is
// returned.
func (s *WatchlistService) Create(ctx context.Context, params CreateWatchParams) (domain.WatchlistEntry, error) {
	a, err := s.lookup(ctx, params.AVenue, params.AMarketID)
	if err != nil {
		return domain.WatchlistEntry{}, err
	}
	b, err := s.lookup(ctx, params.BVenue, params.BMarketID)
	if err != nil {
		return domain.WatchlistEntry{}, err
	}

	investment := params.Investment
	if investment <= 0 {
		investment = 100
	}

	scenario := params.Scenario
	if scenario == "" {
		best := pricing.BestRoi(a.Venue, a.YesPrice, b.Venue, b.YesPrice, investment, domain.OrderTaker)
		scenario = best.Scenario
	}

	entry := domain.WatchlistEntry{
		ID:         uuid.NewString(),
		AVenue:     a.Venue,
		AMarketID:  a.ID,
		ATitle:     a.Title,
		BVenue:     b.Venue,
		BMarketID:  b.ID,
		BTitle:     b.Title,
		Scenario:   scenario,
		Investment: investment,
		GrossRoi:   grossRoi(a, b, scenario),
		NetRoi:     pricing.EvaluateScenario(a.Venue, a.YesPrice, b.Venue, b.YesPrice, scenario, investment, domain.OrderTaker).Roi,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.store.Create(ctx, entry); err != nil {
		return domain.WatchlistEntry{}, fmt.Errorf("service: create watchlist entry: %w", err)
	}
	return entry, nil
}

// Get returns a single watchlist entry by ID.
func (s *WatchlistService) Get(ctx context.Context, id string) (domain.WatchlistEntry, error) {
	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.WatchlistEntry{}, fmt.Errorf("service: get watchlist entry %s: %w", id, err)
	}
	return entry, nil
}

// List returns all watchlist entries.
func (s *WatchlistService) List(ctx context.Context) ([]domain.WatchlistEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list watchlist: %w", err)
	}
	return entries, nil
}

// Delete removes a watchlist entry.
func (s *WatchlistService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: delete watchlist entry %s: %w", id, err)
	}
	return nil
}

// RefreshAll re-prices every pinned pair against the cached snapshots and
// returns the per-entry statuses. Entries whose legs are missing from the
// snapshots are marked stale rather than dropped.
func (s *WatchlistService) RefreshAll(ctx context.Context) ([]WatchStatus, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: refresh watchlist: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	statuses := make([]WatchStatus, 0, len(entries))
	for _, entry := range entries {
		status := WatchStatus{Entry: entry, GrossRoi: entry.GrossRoi, NetRoi: entry.NetRoi}

		a, errA := s.lookup(ctx, entry.AVenue, entry.AMarketID)
		b, errB := s.lookup(ctx, entry.BVenue, entry.BMarketID)
		if errA != nil || errB != nil {
			status.Stale = true
			statuses = append(statuses, status)
			continue
		}

		status.GrossRoi = grossRoi(a, b, entry.Scenario)
		status.NetRoi = pricing.EvaluateScenario(
			a.Venue, a.YesPrice, b.Venue, b.YesPrice,
			entry.Scenario, entry.Investment, domain.OrderTaker,
		).Roi

		s.logger.InfoContext(ctx, "watchlist entry refreshed",
			slog.String("id", entry.ID),
			slog.Float64("gross_roi", status.GrossRoi),
			slog.Float64("net_roi", status.NetRoi),
		)

		if s.notifier != nil && status.NetRoi >= s.alertNetRoi {
			title := fmt.Sprintf("Watched pair at %.2f%% net ROI", status.NetRoi)
			message := fmt.Sprintf("%s / %s\n%s\n%s",
				entry.AVenue, entry.BVenue, entry.ATitle, entry.BTitle)
			if err := s.notifier.Notify(ctx, notify.EventOpportunity, title, message); err != nil {
				s.logger.ErrorContext(ctx, "watchlist alert failed",
					slog.String("id", entry.ID),
					slog.String("error", err.Error()),
				)
			}
		}

		statuses = append(statuses, status)
	}
	return statuses, nil
}

// RunLoop refreshes the watchlist on a repeating interval until the context
// is cancelled.
func (s *WatchlistService) RunLoop(ctx context.Context, interval time.Duration) error {
	if _, err := s.RefreshAll(ctx); err != nil {
		s.logger.Error("watchlist refresh failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watchlist loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.RefreshAll(ctx); err != nil {
				s.logger.Error("watchlist refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}

// lookup finds one market in its venue's cached snapshot.
func (s *WatchlistService) lookup(ctx context.Context, venue domain.Venue, marketID string) (domain.MarketListing, error) {
	listings, err := s.cache.Get(ctx, venue)
	if err != nil {
		return domain.MarketListing{}, fmt.Errorf("service: %s snapshot: %w", venue, err)
	}
	for i := range listings {
		if listings[i].ID == marketID {
			return listings[i], nil
		}
	}
	return domain.MarketListing{}, fmt.Errorf("service: market %s:%s: %w", venue, marketID, domain.ErrNotFound)
}

// grossRoi is the price-only ROI percent for a scenario, independent of
// investment size.
func grossRoi(a, b domain.MarketListing, scenario domain.Scenario) float64 {
	var cost float64
	switch scenario {
	case domain.ScenarioNoAYesB:
		cost = (1 - a.YesPrice) + b.YesPrice
	default:
		cost = a.YesPrice + (1 - b.YesPrice)
	}
	if cost <= 0 || cost >= 1 {
		return 0
	}
	return (1 - cost) / cost * 100
}
