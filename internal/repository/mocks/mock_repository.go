package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id model.TenantID) (*model.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) List(ctx context.Context, tenantID model.TenantID, pq repository.PageQuery) (*repository.PageResult[model.Client], error) {
	args := m.Called(ctx, tenantID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Client]), args.Error(1)
}

func (m *MockClientRepository) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Client, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, tenantID model.TenantID, in model.ClientInput) (*model.Client, error) {
	args := m.Called(ctx, tenantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, tenantID model.TenantID, id int64, p model.ClientPatch) (*model.Client, error) {
	args := m.Called(ctx, tenantID, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) Delete(ctx context.Context, tenantID model.TenantID, id int64) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Count(ctx context.Context, tenantID model.TenantID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) List(ctx context.Context, tenantID model.TenantID, pq repository.PageQuery) (*repository.PageResult[model.Service], error) {
	args := m.Called(ctx, tenantID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Service]), args.Error(1)
}

func (m *MockServiceRepository) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Service, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockServiceRepository) Create(ctx context.Context, tenantID model.TenantID, in model.ServiceInput) (*model.Service, error) {
	args := m.Called(ctx, tenantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, tenantID model.TenantID, id int64, p model.ServicePatch) (*model.Service, error) {
	args := m.Called(ctx, tenantID, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockServiceRepository) Delete(ctx context.Context, tenantID model.TenantID, id int64) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) List(ctx context.Context, tenantID model.TenantID, status model.ContractStatus, pq repository.PageQuery) (*repository.PageResult[model.Contract], error) {
	args := m.Called(ctx, tenantID, status, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Contract]), args.Error(1)
}

func (m *MockContractRepository) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Contract, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func (m *MockContractRepository) Create(ctx context.Context, tenantID model.TenantID, in model.ContractInput) (*model.Contract, error) {
	args := m.Called(ctx, tenantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func (m *MockContractRepository) Update(ctx context.Context, tenantID model.TenantID, id int64, p model.ContractPatch) (*model.Contract, error) {
	args := m.Called(ctx, tenantID, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func (m *MockContractRepository) Delete(ctx context.Context, tenantID model.TenantID, id int64) (string, bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockContractRepository) DocumentKeys(ctx context.Context, tenantID model.TenantID, clientID int64) ([]string, error) {
	args := m.Called(ctx, tenantID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockContractRepository) CountByStatus(ctx context.Context, tenantID model.TenantID) ([]model.ContractStatusCount, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContractStatusCount), args.Error(1)
}

type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) List(ctx context.Context, tenantID model.TenantID, f model.LeadFilter, pq repository.PageQuery) (*repository.PageResult[model.Opportunity], error) {
	args := m.Called(ctx, tenantID, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Opportunity]), args.Error(1)
}

func (m *MockOpportunityRepository) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Opportunity, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) Create(ctx context.Context, tenantID model.TenantID, in model.OpportunityInput) (*model.Opportunity, error) {
	args := m.Called(ctx, tenantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) CreateWithClient(ctx context.Context, tenantID model.TenantID, c model.ClientInput, in model.OpportunityInput) (*model.ClientWithLead, error) {
	args := m.Called(ctx, tenantID, c, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientWithLead), args.Error(1)
}

func (m *MockOpportunityRepository) Update(ctx context.Context, tenantID model.TenantID, id int64, p model.OpportunityPatch) (*model.Opportunity, error) {
	args := m.Called(ctx, tenantID, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) Delete(ctx context.Context, tenantID model.TenantID, id int64) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOpportunityRepository) CountByStage(ctx context.Context, tenantID model.TenantID) ([]model.StageCount, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StageCount), args.Error(1)
}

type MockStageRepository struct {
	mock.Mock
}

func (m *MockStageRepository) List(ctx context.Context) ([]model.Stage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Stage), args.Error(1)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) List(ctx context.Context, tenantID model.TenantID, f model.ProjectFilter, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	args := m.Called(ctx, tenantID, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Project]), args.Error(1)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) CountByStatus(ctx context.Context, tenantID model.TenantID) ([]model.ProjectStatusCount, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectStatusCount), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, tenantID model.TenantID, includeInactive bool) ([]model.User, error) {
	args := m.Called(ctx, tenantID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, tenantID model.TenantID, roleID int64) ([]model.User, error) {
	args := m.Called(ctx, tenantID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) ListByClient(ctx context.Context, tenantID model.TenantID, clientID int64, f model.InteractionFilter) ([]model.Interaction, error) {
	args := m.Called(ctx, tenantID, clientID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) ListByOpportunity(ctx context.Context, tenantID model.TenantID, opportunityID int64) ([]model.Interaction, error) {
	args := m.Called(ctx, tenantID, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Interaction), args.Error(1)
}

var (
	_ repository.TenantRepository      = (*MockTenantRepository)(nil)
	_ repository.ClientRepository      = (*MockClientRepository)(nil)
	_ repository.ServiceRepository     = (*MockServiceRepository)(nil)
	_ repository.ContractRepository    = (*MockContractRepository)(nil)
	_ repository.OpportunityRepository = (*MockOpportunityRepository)(nil)
	_ repository.StageRepository       = (*MockStageRepository)(nil)
	_ repository.ProjectRepository     = (*MockProjectRepository)(nil)
	_ repository.UserRepository        = (*MockUserRepository)(nil)
	_ repository.InteractionRepository = (*MockInteractionRepository)(nil)
)
