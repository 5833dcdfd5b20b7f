// Package service holds the application services that sit between the HTTP
// layer and the stores.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"arbscan/internal/domain"
)

// OpportunityService exposes read access to the opportunity history.
type OpportunityService struct {
	store  domain.OpportunityStore
	logger *slog.Logger
}

// NewOpportunityService creates an OpportunityService.
func NewOpportunityService(store domain.OpportunityStore, logger *slog.Logger) *OpportunityService {
	return &OpportunityService{
		store:  store,
		logger: logger.With(slog.String("component", "opportunity_service")),
	}
}

// defaultListLimit bounds unpaginated list requests.
const defaultListLimit = 100

// ListRecent returns the most recently detected opportunities.
func (s *OpportunityService) ListRecent(ctx context.Context, opts domain.ListOpts) ([]domain.ArbitrageOpportunity, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	opps, err := s.store.ListRecent(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("service: list opportunities: %w", err)
	}
	return opps, nil
}

// Get returns a single opportunity by ID.
func (s *OpportunityService) Get(ctx context.Context, id string) (domain.ArbitrageOpportunity, error) {
	opp, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.ArbitrageOpportunity{}, fmt.Errorf("service: get opportunity %s: %w", id, err)
	}
	return opp, nil
}
