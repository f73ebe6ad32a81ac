package service

import (
	"context"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/tenancy"
)

// LeadService manages opportunities, which belong to a tenant through their client.
type LeadService interface {
	List(ctx context.Context, rc tenancy.RequestContext, f model.LeadFilter, limit, offset int) (*Page[model.Opportunity], error)
	Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Opportunity, error)
	Create(ctx context.Context, rc tenancy.RequestContext, in model.OpportunityInput) (*model.Opportunity, error)
	// CreateWithClient creates a new client and its first lead atomically.
	CreateWithClient(ctx context.Context, rc tenancy.RequestContext, c model.ClientInput, in model.OpportunityInput) (*model.ClientWithLead, error)
	Update(ctx context.Context, rc tenancy.RequestContext, id int64, p model.OpportunityPatch) (*model.Opportunity, error)
	Delete(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error)
}

type leadService struct {
	repo repository.OpportunityRepository
}

func NewLeadService(repo repository.OpportunityRepository) LeadService {
	return &leadService{repo: repo}
}

func (s *leadService) List(ctx context.Context, rc tenancy.RequestContext, f model.LeadFilter, limit, offset int) (*Page[model.Opportunity], error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	pq := pageQuery(limit, offset)
	res, err := s.repo.List(ctx, rc.TenantID(), f, pq)
	if err != nil {
		return nil, err
	}
	return toPage(res, pq), nil
}

func (s *leadService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Opportunity, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, rc.TenantID(), id)
}

func (s *leadService) Create(ctx context.Context, rc tenancy.RequestContext, in model.OpportunityInput) (*model.Opportunity, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, rc.TenantID(), in)
}

func (s *leadService) CreateWithClient(ctx context.Context, rc tenancy.RequestContext, c model.ClientInput, in model.OpportunityInput) (*model.ClientWithLead, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := in.ValidateForNewClient(); err != nil {
		return nil, err
	}
	return s.repo.CreateWithClient(ctx, rc.TenantID(), c, in)
}

func (s *leadService) Update(ctx context.Context, rc tenancy.RequestContext, id int64, p model.OpportunityPatch) (*model.Opportunity, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, rc.TenantID(), id, p)
}

func (s *leadService) Delete(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error) {
	if err := requireTenant(rc); err != nil {
		return false, err
	}
	if err := requireID(id); err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, rc.TenantID(), id)
}
