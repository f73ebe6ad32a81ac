package service

import (
	"context"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/tenancy"
)

// InteractionService reads the contact history of clients and leads.
type InteractionService interface {
	// ForClient fails with ErrNotFound when the client is not the tenant's.
	ForClient(ctx context.Context, rc tenancy.RequestContext, clientID int64, f model.InteractionFilter) ([]model.Interaction, error)
	// ForLead fails with ErrNotFound when the lead's client is not the tenant's.
	ForLead(ctx context.Context, rc tenancy.RequestContext, leadID int64) ([]model.Interaction, error)
}

type interactionService struct {
	repo    repository.InteractionRepository
	clients repository.ClientRepository
	leads   repository.OpportunityRepository
}

func NewInteractionService(repo repository.InteractionRepository, clients repository.ClientRepository, leads repository.OpportunityRepository) InteractionService {
	return &interactionService{repo: repo, clients: clients, leads: leads}
}

func (s *interactionService) ForClient(ctx context.Context, rc tenancy.RequestContext, clientID int64, f model.InteractionFilter) ([]model.Interaction, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(clientID); err != nil {
		return nil, err
	}
	// An empty history and a foreign client must not look alike.
	if _, err := s.clients.FindByID(ctx, rc.TenantID(), clientID); err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, rc.TenantID(), clientID, f)
}

func (s *interactionService) ForLead(ctx context.Context, rc tenancy.RequestContext, leadID int64) ([]model.Interaction, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(leadID); err != nil {
		return nil, err
	}
	if _, err := s.leads.FindByID(ctx, rc.TenantID(), leadID); err != nil {
		return nil, err
	}
	return s.repo.ListByOpportunity(ctx, rc.TenantID(), leadID)
}
