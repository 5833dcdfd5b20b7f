package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"arbscan/internal/domain"
)

// OpportunityService defines the methods that the opportunities handler
// requires.
type OpportunityService interface {
	ListRecent(ctx context.Context, opts domain.ListOpts) ([]domain.ArbitrageOpportunity, error)
	Get(ctx context.Context, id string) (domain.ArbitrageOpportunity, error)
}

// OpportunityHandler serves the opportunity history endpoints.
type OpportunityHandler struct {
	svc    OpportunityService
	logger *slog.Logger
}

// NewOpportunityHandler creates an OpportunityHandler.
func NewOpportunityHandler(svc OpportunityService, logger *slog.Logger) *OpportunityHandler {
	return &OpportunityHandler{svc: svc, logger: logHandler(logger, "opportunities")}
}

// listOpportunitiesResponse wraps the list response.
type listOpportunitiesResponse struct {
	Opportunities []domain.ArbitrageOpportunity `json:"opportunities"`
}

// List returns recent opportunities, best first within equal detection times.
// GET /api/opportunities?limit=50&offset=0&since=2026-08-01
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := parseListOpts(r)
	since, ok := parseSinceDate(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid since date, expected YYYY-MM-DD")
		return
	}
	opts.Since = since

	opps, err := h.svc.ListRecent(r.Context(), opts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list opportunities failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list opportunities")
		return
	}

	if opps == nil {
		opps = []domain.ArbitrageOpportunity{}
	}
	writeJSON(w, http.StatusOK, listOpportunitiesResponse{Opportunities: opps})
}

// Get returns a single opportunity by ID.
// GET /api/opportunities/{id}
func (h *OpportunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing opportunity id")
		return
	}

	opp, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "opportunity not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: get opportunity failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to get opportunity")
		return
	}
	writeJSON(w, http.StatusOK, opp)
}
