// Package repository defines the tenant-scoped data access contracts.
// Implementations live in subpackages (e.g. postgres).
//
// Every scoped operation takes the tenant id as its first argument after the
// context. A row owned by another tenant is reported exactly like a missing
// row (errs.ErrNotFound, or false from Delete).
package repository

import (
	"context"

	"crmapi/internal/model"
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// TenantRepository reads the tenant registry.
type TenantRepository interface {
	FindByID(ctx context.Context, id model.TenantID) (*model.Tenant, error)
}

// ClientRepository manages clients, scoped directly by tenant_id.
type ClientRepository interface {
	List(ctx context.Context, tenantID model.TenantID, pq PageQuery) (*PageResult[model.Client], error)
	FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Client, error)
	Create(ctx context.Context, tenantID model.TenantID, in model.ClientInput) (*model.Client, error)
	Update(ctx context.Context, tenantID model.TenantID, id int64, p model.ClientPatch) (*model.Client, error)
	Delete(ctx context.Context, tenantID model.TenantID, id int64) (bool, error)
	Count(ctx context.Context, tenantID model.TenantID) (int, error)
}

// ServiceRepository manages catalogue services, scoped directly by tenant_id.
type ServiceRepository interface {
	List(ctx context.Context, tenantID model.TenantID, pq PageQuery) (*PageResult[model.Service], error)
	FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Service, error)
	Create(ctx context.Context, tenantID model.TenantID, in model.ServiceInput) (*model.Service, error)
	Update(ctx context.Context, tenantID model.TenantID, id int64, p model.ServicePatch) (*model.Service, error)
	Delete(ctx context.Context, tenantID model.TenantID, id int64) (bool, error)
}

// ContractRepository manages contracts, scoped directly by tenant_id. A
// contract's client must belong to the same tenant.
type ContractRepository interface {
	List(ctx context.Context, tenantID model.TenantID, status model.ContractStatus, pq PageQuery) (*PageResult[model.Contract], error)
	FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Contract, error)
	Create(ctx context.Context, tenantID model.TenantID, in model.ContractInput) (*model.Contract, error)
	Update(ctx context.Context, tenantID model.TenantID, id int64, p model.ContractPatch) (*model.Contract, error)
	// Delete reports whether the contract was removed and returns the document
	// key it carried, empty when it had none.
	Delete(ctx context.Context, tenantID model.TenantID, id int64) (documentKey string, ok bool, err error)
	CountByStatus(ctx context.Context, tenantID model.TenantID) ([]model.ContractStatusCount, error)
	// DocumentKeys lists the non-empty document keys of a client's contracts.
	DocumentKeys(ctx context.Context, tenantID model.TenantID, clientID int64) ([]string, error)
}

// ProjectRepository reads projects, scoped directly by tenant_id.
type ProjectRepository interface {
	List(ctx context.Context, tenantID model.TenantID, f model.ProjectFilter, pq PageQuery) (*PageResult[model.Project], error)
	FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Project, error)
	CountByStatus(ctx context.Context, tenantID model.TenantID) ([]model.ProjectStatusCount, error)
}

// UserRepository reads the tenant's staff accounts.
type UserRepository interface {
	// List returns the tenant's users by name; inactive users only when
	// includeInactive is set.
	List(ctx context.Context, tenantID model.TenantID, includeInactive bool) ([]model.User, error)
	FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.User, error)
	// ListByRole returns the active users holding roleID.
	ListByRole(ctx context.Context, tenantID model.TenantID, roleID int64) ([]model.User, error)
}

// InteractionRepository reads the contact history of clients, newest first.
type InteractionRepository interface {
	ListByClient(ctx context.Context, tenantID model.TenantID, clientID int64, f model.InteractionFilter) ([]model.Interaction, error)
	// ListByOpportunity proves the lead's tenant through its client.
	ListByOpportunity(ctx context.Context, tenantID model.TenantID, opportunityID int64) ([]model.Interaction, error)
}

// OpportunityRepository manages leads. Leads carry no tenant column; ownership
// is proven through the parent client.
type OpportunityRepository interface {
	List(ctx context.Context, tenantID model.TenantID, f model.LeadFilter, pq PageQuery) (*PageResult[model.Opportunity], error)
	FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Opportunity, error)
	Create(ctx context.Context, tenantID model.TenantID, in model.OpportunityInput) (*model.Opportunity, error)
	// CreateWithClient inserts a client and its first lead in one transaction.
	CreateWithClient(ctx context.Context, tenantID model.TenantID, c model.ClientInput, in model.OpportunityInput) (*model.ClientWithLead, error)
	Update(ctx context.Context, tenantID model.TenantID, id int64, p model.OpportunityPatch) (*model.Opportunity, error)
	Delete(ctx context.Context, tenantID model.TenantID, id int64) (bool, error)
	CountByStage(ctx context.Context, tenantID model.TenantID) ([]model.StageCount, error)
}

// StageRepository reads the shared pipeline stages.
type StageRepository interface {
	List(ctx context.Context) ([]model.Stage, error)
}
