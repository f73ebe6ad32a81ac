package service

import (
	"context"

	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/tenancy"
)

// ProjectService reads the tenant's projects.
type ProjectService interface {
	List(ctx context.Context, rc tenancy.RequestContext, f model.ProjectFilter, limit, offset int) (*Page[model.Project], error)
	Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Project, error)
}

type projectService struct {
	repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) List(ctx context.Context, rc tenancy.RequestContext, f model.ProjectFilter, limit, offset int) (*Page[model.Project], error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, errs.Invalid("status")
	}
	pq := pageQuery(limit, offset)
	res, err := s.repo.List(ctx, rc.TenantID(), f, pq)
	if err != nil {
		return nil, err
	}
	return toPage(res, pq), nil
}

func (s *projectService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Project, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, rc.TenantID(), id)
}
