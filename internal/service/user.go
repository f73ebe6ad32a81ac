package service

import (
	"context"

	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/tenancy"
)

// UserService reads the tenant's staff directory.
type UserService interface {
	// List returns users by name. A positive roleID narrows the list to the
	// active holders of that role and ignores includeInactive.
	List(ctx context.Context, rc tenancy.RequestContext, roleID int64, includeInactive bool) ([]model.User, error)
	Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, rc tenancy.RequestContext, roleID int64, includeInactive bool) ([]model.User, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if roleID < 0 {
		return nil, errs.Invalid("role_id")
	}
	if roleID > 0 {
		return s.repo.ListByRole(ctx, rc.TenantID(), roleID)
	}
	return s.repo.List(ctx, rc.TenantID(), includeInactive)
}

func (s *userService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.User, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, rc.TenantID(), id)
}
