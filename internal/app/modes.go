package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"arbscan/internal/pipeline"
	"arbscan/internal/server"
	"arbscan/internal/server/handler"
	"arbscan/internal/service"
)

// buildScanner assembles the scan pipeline from the wired dependencies.
// Optional infrastructure is attached only when present.
func (a *App) buildScanner(deps *Dependencies) *pipeline.Scanner {
	scanner := pipeline.NewScanner(deps.Fetchers, pipeline.ScannerConfig{
		MinRoi:              a.cfg.Scan.MinRoi,
		MaxListingsPerVenue: a.cfg.Scan.MaxListingsPerVenue,
	}, a.logger)

	if deps.ListingCache != nil {
		scanner = scanner.WithCache(deps.ListingCache)
	}
	if deps.RateLimiter != nil {
		scanner = scanner.WithRateLimiter(deps.RateLimiter)
	}
	if deps.LockManager != nil {
		scanner = scanner.WithLockManager(deps.LockManager)
	}
	if deps.OpportunityStore != nil {
		scanner = scanner.WithStore(deps.OpportunityStore)
	}
	if deps.Notifier != nil {
		scanner = scanner.WithNotifier(deps.Notifier)
	}
	if deps.Archiver != nil {
		scanner = scanner.WithArchiver(deps.Archiver)
	}
	return scanner
}

// buildWatchlistService assembles the watchlist service, or returns nil when
// its prerequisites (database and snapshot cache) are not wired.
func (a *App) buildWatchlistService(deps *Dependencies) *service.WatchlistService {
	if deps.WatchlistStore == nil || deps.ListingCache == nil {
		return nil
	}
	return service.NewWatchlistService(
		deps.WatchlistStore,
		deps.ListingCache,
		deps.Notifier,
		a.cfg.Notify.MinRoi,
		a.logger,
	)
}

// ScanMode runs a single scan cycle and writes the ranked opportunities to
// stdout as JSON. It is the one-shot CLI mode.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scan mode")

	scanner := a.buildScanner(deps)
	opps, err := scanner.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("scan mode: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(opps); err != nil {
		return fmt.Errorf("scan mode: encode results: %w", err)
	}

	a.logger.InfoContext(ctx, "scan complete", slog.Int("opportunities", len(opps)))
	return nil
}

// WatchMode runs the scan loop, watchlist refresh, and archival cron until
// the context is cancelled.
func (a *App) WatchMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting watch mode",
		slog.Duration("interval", a.cfg.Scan.Interval),
	)

	orch := a.buildOrchestrator(deps)
	return orch.Run(ctx)
}

// ServeMode runs everything WatchMode runs plus the HTTP API server.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode",
		slog.Int("port", a.cfg.Server.Port),
	)

	g, ctx := errgroup.WithContext(ctx)

	orch := a.buildOrchestrator(deps)
	g.Go(func() error {
		err := orch.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})

	a.startHTTPServer(ctx, g, deps)

	return g.Wait()
}

// buildOrchestrator wires the scanner, watchlist loop, and archival cron.
func (a *App) buildOrchestrator(deps *Dependencies) *pipeline.Orchestrator {
	var archiver *pipeline.Archiver
	if deps.Archiver != nil && deps.OpportunityStore != nil {
		archiver = pipeline.NewArchiver(deps.Archiver, a.cfg.S3.RetentionDays, a.logger)
	}

	return pipeline.NewOrchestrator(
		a.buildScanner(deps),
		a.buildWatchlistService(deps),
		archiver,
		a.cfg.Scan.Interval,
		a.cfg.S3.ArchiveCron,
		a.logger,
	)
}

// startHTTPServer wires the handlers and runs the HTTP server in the
// errgroup, including a shutdown goroutine bound to ctx.
func (a *App) startHTTPServer(ctx context.Context, g *errgroup.Group, deps *Dependencies) {
	oppSvc := service.NewOpportunityService(deps.OpportunityStore, a.logger)
	watchSvc := a.buildWatchlistService(deps)

	handlers := server.Handlers{
		Health:        handler.NewHealthHandler(a.logger),
		Opportunities: handler.NewOpportunityHandler(oppSvc, a.logger),
		Watchlist:     handler.NewWatchlistHandler(watchSvc, a.logger),
		Scan:          handler.NewScanHandler(a.buildScanner(deps), a.logger),
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
		APIKey:      a.cfg.Server.APIKey,
	}, handlers, deps.RateLimiter, a.logger)

	g.Go(func() error {
		if err := srv.Start(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// modeNames lists the supported operating modes for error messages.
func modeNames() string {
	return strings.Join([]string{"scan", "watch", "serve"}, ", ")
}
