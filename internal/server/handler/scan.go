package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"arbscan/internal/domain"
)

// ScanRunner executes one scan cycle on demand.
type ScanRunner interface {
	RunCycle(ctx context.Context) ([]domain.ArbitrageOpportunity, error)
}

// ScanHandler serves the manual scan trigger endpoint.
type ScanHandler struct {
	runner ScanRunner
	logger *slog.Logger
}

// NewScanHandler creates a ScanHandler.
func NewScanHandler(runner ScanRunner, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{runner: runner, logger: logHandler(logger, "scan")}
}

// Trigger runs one scan cycle synchronously and returns its results.
// POST /api/scan
func (h *ScanHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "handler: manual scan requested")
	started := time.Now().UTC()

	opps, err := h.runner.RunCycle(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: manual scan failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "scan cycle failed")
		return
	}

	if opps == nil {
		opps = []domain.ArbitrageOpportunity{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"started_at":    started.Format(time.RFC3339),
		"elapsed_ms":    time.Since(started).Milliseconds(),
		"opportunities": opps,
	})
}
