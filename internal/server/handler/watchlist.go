package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"arbscan/internal/domain"
	"arbscan/internal/service"
)

// WatchlistService defines the methods that the watchlist handler requires.
type WatchlistService interface {
	Create(ctx context.Context, params service.CreateWatchParams) (domain.WatchlistEntry, error)
	Get(ctx context.Context, id string) (domain.WatchlistEntry, error)
	List(ctx context.Context) ([]domain.WatchlistEntry, error)
	Delete(ctx context.Context, id string) error
}

// WatchlistHandler serves the watchlist CRUD endpoints.
type WatchlistHandler struct {
	svc    WatchlistService
	logger *slog.Logger
}

// NewWatchlistHandler creates a WatchlistHandler.
func NewWatchlistHandler(svc WatchlistService, logger *slog.Logger) *WatchlistHandler {
	return &WatchlistHandler{svc: svc, logger: logHandler(logger, "watchlist")}
}

// createWatchRequest is the JSON body for pinning a pair.
type createWatchRequest struct {
	AVenue     string  `json:"a_venue"`
	AMarketID  string  `json:"a_market_id"`
	BVenue     string  `json:"b_venue"`
	BMarketID  string  `json:"b_market_id"`
	Scenario   string  `json:"scenario,omitempty"`
	Investment float64 `json:"investment,omitempty"`
}

// listWatchlistResponse wraps the list response.
type listWatchlistResponse struct {
	Entries []domain.WatchlistEntry `json:"entries"`
}

// List returns all watchlist entries.
// GET /api/watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list watchlist failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list watchlist")
		return
	}
	if entries == nil {
		entries = []domain.WatchlistEntry{}
	}
	writeJSON(w, http.StatusOK, listWatchlistResponse{Entries: entries})
}

// Create pins a new pair.
// POST /api/watchlist
func (h *WatchlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AVenue == "" || req.AMarketID == "" || req.BVenue == "" || req.BMarketID == "" {
		writeError(w, http.StatusBadRequest, "both markets must be specified")
		return
	}

	entry, err := h.svc.Create(r.Context(), service.CreateWatchParams{
		AVenue:     domain.Venue(req.AVenue),
		AMarketID:  req.AMarketID,
		BVenue:     domain.Venue(req.BVenue),
		BMarketID:  req.BMarketID,
		Scenario:   domain.Scenario(req.Scenario),
		Investment: req.Investment,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "market not found in current snapshots")
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "pair already on watchlist")
		default:
			h.logger.ErrorContext(r.Context(), "handler: create watchlist entry failed",
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, "failed to create watchlist entry")
		}
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Get returns a single watchlist entry by ID.
// GET /api/watchlist/{id}
func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing watchlist id")
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "watchlist entry not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: get watchlist entry failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to get watchlist entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Delete removes a watchlist entry.
// DELETE /api/watchlist/{id}
func (h *WatchlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing watchlist id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "watchlist entry not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: delete watchlist entry failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to delete watchlist entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
