package service

import (
	"context"

	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/tenancy"
)

type ContractService interface {
	// List returns contracts, optionally narrowed to status. An empty status lists all.
	List(ctx context.Context, rc tenancy.RequestContext, status model.ContractStatus, limit, offset int) (*Page[model.Contract], error)
	Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Contract, error)
	Create(ctx context.Context, rc tenancy.RequestContext, in model.ContractInput) (*model.Contract, error)
	Update(ctx context.Context, rc tenancy.RequestContext, id int64, p model.ContractPatch) (*model.Contract, error)
	// Delete reports whether a contract was removed. Its stored document is
	// removed too, best effort.
	Delete(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error)
}

type contractService struct {
	repo repository.ContractRepository
	docs *DocumentSweeper
}

func NewContractService(repo repository.ContractRepository, docs *DocumentSweeper) ContractService {
	return &contractService{repo: repo, docs: docs}
}

func (s *contractService) List(ctx context.Context, rc tenancy.RequestContext, status model.ContractStatus, limit, offset int) (*Page[model.Contract], error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, errs.Invalid("status")
	}
	pq := pageQuery(limit, offset)
	res, err := s.repo.List(ctx, rc.TenantID(), status, pq)
	if err != nil {
		return nil, err
	}
	return toPage(res, pq), nil
}

func (s *contractService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Contract, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, rc.TenantID(), id)
}

func (s *contractService) Create(ctx context.Context, rc tenancy.RequestContext, in model.ContractInput) (*model.Contract, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, rc.TenantID(), in)
}

func (s *contractService) Update(ctx context.Context, rc tenancy.RequestContext, id int64, p model.ContractPatch) (*model.Contract, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	// The document key is owned by ContractDocumentService.
	p.DocumentKey = nil
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, rc.TenantID(), id, p)
}

func (s *contractService) Delete(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error) {
	if err := requireTenant(rc); err != nil {
		return false, err
	}
	if err := requireID(id); err != nil {
		return false, err
	}
	key, ok, err := s.repo.Delete(ctx, rc.TenantID(), id)
	if err != nil || !ok {
		return false, err
	}
	s.docs.sweep(ctx, rc.TenantID(), key)
	return true, nil
}
