package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/tenancy"
)

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) List(ctx context.Context, rc tenancy.RequestContext, limit, offset int) (*service.Page[model.Client], error) {
	args := m.Called(ctx, rc, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Client]), args.Error(1)
}

func (m *MockClientService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Client, error) {
	args := m.Called(ctx, rc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Create(ctx context.Context, rc tenancy.RequestContext, in model.ClientInput) (*model.Client, error) {
	args := m.Called(ctx, rc, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Update(ctx context.Context, rc tenancy.RequestContext, id int64, p model.ClientPatch) (*model.Client, error) {
	args := m.Called(ctx, rc, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientService) Delete(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error) {
	args := m.Called(ctx, rc, id)
	return args.Bool(0), args.Error(1)
}

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) List(ctx context.Context, rc tenancy.RequestContext, f model.LeadFilter, limit, offset int) (*service.Page[model.Opportunity], error) {
	args := m.Called(ctx, rc, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Opportunity]), args.Error(1)
}

func (m *MockLeadService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Opportunity, error) {
	args := m.Called(ctx, rc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Opportunity), args.Error(1)
}

func (m *MockLeadService) Create(ctx context.Context, rc tenancy.RequestContext, in model.OpportunityInput) (*model.Opportunity, error) {
	args := m.Called(ctx, rc, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Opportunity), args.Error(1)
}

func (m *MockLeadService) CreateWithClient(ctx context.Context, rc tenancy.RequestContext, c model.ClientInput, in model.OpportunityInput) (*model.ClientWithLead, error) {
	args := m.Called(ctx, rc, c, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientWithLead), args.Error(1)
}

func (m *MockLeadService) Update(ctx context.Context, rc tenancy.RequestContext, id int64, p model.OpportunityPatch) (*model.Opportunity, error) {
	args := m.Called(ctx, rc, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Opportunity), args.Error(1)
}

func (m *MockLeadService) Delete(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error) {
	args := m.Called(ctx, rc, id)
	return args.Bool(0), args.Error(1)
}

type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) List(ctx context.Context, rc tenancy.RequestContext, status model.ContractStatus, limit, offset int) (*service.Page[model.Contract], error) {
	args := m.Called(ctx, rc, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Contract]), args.Error(1)
}

func (m *MockContractService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Contract, error) {
	args := m.Called(ctx, rc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func (m *MockContractService) Create(ctx context.Context, rc tenancy.RequestContext, in model.ContractInput) (*model.Contract, error) {
	args := m.Called(ctx, rc, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func (m *MockContractService) Update(ctx context.Context, rc tenancy.RequestContext, id int64, p model.ContractPatch) (*model.Contract, error) {
	args := m.Called(ctx, rc, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func (m *MockContractService) Delete(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error) {
	args := m.Called(ctx, rc, id)
	return args.Bool(0), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListServices(ctx context.Context, rc tenancy.RequestContext, limit, offset int) (*service.Page[model.Service], error) {
	args := m.Called(ctx, rc, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Service]), args.Error(1)
}

func (m *MockCatalogService) GetService(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Service, error) {
	args := m.Called(ctx, rc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockCatalogService) CreateService(ctx context.Context, rc tenancy.RequestContext, in model.ServiceInput) (*model.Service, error) {
	args := m.Called(ctx, rc, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockCatalogService) UpdateService(ctx context.Context, rc tenancy.RequestContext, id int64, p model.ServicePatch) (*model.Service, error) {
	args := m.Called(ctx, rc, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockCatalogService) DeleteService(ctx context.Context, rc tenancy.RequestContext, id int64) (bool, error) {
	args := m.Called(ctx, rc, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogService) ListStages(ctx context.Context, rc tenancy.RequestContext) ([]model.Stage, error) {
	args := m.Called(ctx, rc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Stage), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context, rc tenancy.RequestContext) (*service.DashboardSummary, error) {
	args := m.Called(ctx, rc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardSummary), args.Error(1)
}

type MockContractDocumentService struct {
	mock.Mock
}

func (m *MockContractDocumentService) Upload(ctx context.Context, rc tenancy.RequestContext, contractID int64, r io.Reader, filename, contentType string, size int64) (*model.Contract, error) {
	args := m.Called(ctx, rc, contractID, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func (m *MockContractDocumentService) DownloadURL(ctx context.Context, rc tenancy.RequestContext, contractID int64) (string, error) {
	args := m.Called(ctx, rc, contractID)
	return args.String(0), args.Error(1)
}

func (m *MockContractDocumentService) Remove(ctx context.Context, rc tenancy.RequestContext, contractID int64) (*model.Contract, error) {
	args := m.Called(ctx, rc, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) List(ctx context.Context, rc tenancy.RequestContext, f model.ProjectFilter, limit, offset int) (*service.Page[model.Project], error) {
	args := m.Called(ctx, rc, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Project]), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.Project, error) {
	args := m.Called(ctx, rc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, rc tenancy.RequestContext, roleID int64, includeInactive bool) ([]model.User, error) {
	args := m.Called(ctx, rc, roleID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, rc tenancy.RequestContext, id int64) (*model.User, error) {
	args := m.Called(ctx, rc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) ForClient(ctx context.Context, rc tenancy.RequestContext, clientID int64, f model.InteractionFilter) ([]model.Interaction, error) {
	args := m.Called(ctx, rc, clientID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Interaction), args.Error(1)
}

func (m *MockInteractionService) ForLead(ctx context.Context, rc tenancy.RequestContext, leadID int64) ([]model.Interaction, error) {
	args := m.Called(ctx, rc, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Interaction), args.Error(1)
}

var (
	_ service.ClientService           = (*MockClientService)(nil)
	_ service.LeadService             = (*MockLeadService)(nil)
	_ service.ContractService         = (*MockContractService)(nil)
	_ service.CatalogService          = (*MockCatalogService)(nil)
	_ service.DashboardService        = (*MockDashboardService)(nil)
	_ service.ContractDocumentService = (*MockContractDocumentService)(nil)
	_ service.ProjectService          = (*MockProjectService)(nil)
	_ service.UserService             = (*MockUserService)(nil)
	_ service.InteractionService      = (*MockInteractionService)(nil)
)
