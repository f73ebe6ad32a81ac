package service

import (
	"context"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/tenancy"
)

// CatalogService exposes the tenant's services and the shared pipeline stages.
type CatalogService interface {
	ListServices(ctx context.Context, rc tenancy.RequestContext, limit, offset int) (*Page[model.Service], error)
	GetService(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Service, error)
	CreateService(ctx context.Context, rc tenancy.RequestContext, in model.ServiceInput) (*model.Service, error)
	UpdateService(ctx context.Context, rc tenancy.RequestContext, id int64, p model.ServicePatch) (*model.Service, error)
	DeleteService(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error)
	// ListStages returns the stages every tenant's pipeline uses.
	ListStages(ctx context.Context, rc tenancy.RequestContext) ([]model.Stage, error)
}

type catalogService struct {
	services repository.ServiceRepository
	stages   repository.StageRepository
}

func NewCatalogService(services repository.ServiceRepository, stages repository.StageRepository) CatalogService {
	return &catalogService{services: services, stages: stages}
}

func (s *catalogService) ListServices(ctx context.Context, rc tenancy.RequestContext, limit, offset int) (*Page[model.Service], error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	pq := pageQuery(limit, offset)
	res, err := s.services.List(ctx, rc.TenantID(), pq)
	if err != nil {
		return nil, err
	}
	return toPage(res, pq), nil
}

func (s *catalogService) GetService(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Service, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.services.FindByID(ctx, rc.TenantID(), id)
}

func (s *catalogService) CreateService(ctx context.Context, rc tenancy.RequestContext, in model.ServiceInput) (*model.Service, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.services.Create(ctx, rc.TenantID(), in)
}

func (s *catalogService) UpdateService(ctx context.Context, rc tenancy.RequestContext, id int64, p model.ServicePatch) (*model.Service, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.services.Update(ctx, rc.TenantID(), id, p)
}

func (s *catalogService) DeleteService(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error) {
	if err := requireTenant(rc); err != nil {
		return false, err
	}
	if err := requireID(id); err != nil {
		return false, err
	}
	return s.services.Delete(ctx, rc.TenantID(), id)
}

func (s *catalogService) ListStages(ctx context.Context, rc tenancy.RequestContext) ([]model.Stage, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	return s.stages.List(ctx)
}
