package service

import (
	"context"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/tenancy"
)

// ClientService manages the tenant's clients.
type ClientService interface {
	List(ctx context.Context, rc tenancy.RequestContext, limit, offset int) (*Page[model.Client], error)
	Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Client, error)
	Create(ctx context.Context, rc tenancy.RequestContext, in model.ClientInput) (*model.Client, error)
	Update(ctx context.Context, rc tenancy.RequestContext, id int64, p model.ClientPatch) (*model.Client, error)
	// Delete reports whether a client was removed. Its leads and contracts go
	// with it, and so do the contracts' stored documents.
	Delete(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error)
}

type clientService struct {
	repo      repository.ClientRepository
	contracts repository.ContractRepository
	docs      *DocumentSweeper
}

func NewClientService(repo repository.ClientRepository, contracts repository.ContractRepository, docs *DocumentSweeper) ClientService {
	return &clientService{repo: repo, contracts: contracts, docs: docs}
}

func (s *clientService) List(ctx context.Context, rc tenancy.RequestContext, limit, offset int) (*Page[model.Client], error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	pq := pageQuery(limit, offset)
	res, err := s.repo.List(ctx, rc.TenantID(), pq)
	if err != nil {
		return nil, err
	}
	return toPage(res, pq), nil
}

func (s *clientService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Client, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, rc.TenantID(), id)
}

func (s *clientService) Create(ctx context.Context, rc tenancy.RequestContext, in model.ClientInput) (*model.Client, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, rc.TenantID(), in)
}

func (s *clientService) Update(ctx context.Context, rc tenancy.RequestContext, id int64, p model.ClientPatch) (*model.Client, error) {
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

func (s *clientService) Delete(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error) {
	if err := requireTenant(rc); err != nil {
		return false, err
	}
	if err := requireID(id); err != nil {
		return false, err
	}
	tenantID := rc.TenantID()

	// Keys are read first; the cascade leaves nothing to read afterwards.
	keys, err := s.contracts.DocumentKeys(ctx, tenantID, id)
	if err != nil {
		return false, err
	}
	ok, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil || !ok {
		return false, err
	}
	s.docs.sweep(ctx, tenantID, keys...)
	return true, nil
}
