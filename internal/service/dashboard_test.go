package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmapi/internal/errs"
	"crmapi/internal/model"
	repoMocks "crmapi/internal/repository/mocks"
)

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	rc := tenantCtx(3)

	t.Run("folds the scoped statistics", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		leads := new(repoMocks.MockOpportunityRepository)
		contracts := new(repoMocks.MockContractRepository)
		projects := new(repoMocks.MockProjectRepository)

		clients.On("Count", mock.Anything, model.TenantID(3)).Return(4, nil)
		leads.On("CountByStage", mock.Anything, model.TenantID(3)).Return([]model.StageCount{
			{StageID: 1, StageName: "New", Count: 2, Value: 200},
			{StageID: 4, StageName: "Won", Count: 1, Value: 1000},
		}, nil)
		contracts.On("CountByStatus", mock.Anything, model.TenantID(3)).Return([]model.ContractStatusCount{
			{Status: model.ContractActive, Count: 2, Value: 5000},
			{Status: model.ContractPending, Count: 1, Value: 100},
			{Status: model.ContractExpired, Count: 3, Value: 900},
		}, nil)
		projects.On("CountByStatus", mock.Anything, model.TenantID(3)).Return([]model.ProjectStatusCount{
			{Status: model.ProjectActive, Count: 3},
			{Status: model.ProjectCompleted, Count: 5},
			{Status: model.ProjectOnHold, Count: 1},
		}, nil)

		sum, err := NewDashboardService(clients, leads, contracts, projects).Summary(ctx, rc)

		require.NoError(t, err)
		assert.Equal(t, TenantSummary{ID: 3, CompanyName: "Acme"}, sum.Tenant)
		assert.Equal(t, 4, sum.Clients.Total)
		assert.Equal(t, 3, sum.Leads.Total)
		assert.Equal(t, int64(1200), sum.Leads.TotalValue)
		assert.Len(t, sum.Leads.ByStage, 2)
		assert.Equal(t, ContractSummary{Total: 6, Active: 2, Pending: 1, Expired: 3, ActiveValue: 5000}, sum.Contracts)
		assert.Equal(t, ProjectSummary{Total: 9, Active: 3, Completed: 5, OnHold: 1}, sum.Projects)
	})

	t.Run("empty tenant yields zeroed summaries", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		leads := new(repoMocks.MockOpportunityRepository)
		contracts := new(repoMocks.MockContractRepository)
		projects := new(repoMocks.MockProjectRepository)

		clients.On("Count", mock.Anything, model.TenantID(3)).Return(0, nil)
		leads.On("CountByStage", mock.Anything, model.TenantID(3)).Return([]model.StageCount{}, nil)
		contracts.On("CountByStatus", mock.Anything, model.TenantID(3)).Return([]model.ContractStatusCount{}, nil)
		projects.On("CountByStatus", mock.Anything, model.TenantID(3)).Return([]model.ProjectStatusCount{}, nil)

		sum, err := NewDashboardService(clients, leads, contracts, projects).Summary(ctx, rc)

		require.NoError(t, err)
		assert.Equal(t, LeadSummary{ByStage: []model.StageCount{}}, sum.Leads)
		assert.Equal(t, ContractSummary{}, sum.Contracts)
		assert.Equal(t, ProjectSummary{}, sum.Projects)
		assert.NotNil(t, sum.Leads.ByStage)
	})

	t.Run("a failing query fails the summary", func(t *testing.T) {
		clients := new(repoMocks.MockClientRepository)
		leads := new(repoMocks.MockOpportunityRepository)
		contracts := new(repoMocks.MockContractRepository)
		projects := new(repoMocks.MockProjectRepository)

		down := errors.Join(errs.ErrStorageUnavailable, errors.New("connection refused"))
		clients.On("Count", mock.Anything, model.TenantID(3)).Return(0, down)
		leads.On("CountByStage", mock.Anything, model.TenantID(3)).Return([]model.StageCount{}, nil).Maybe()
		contracts.On("CountByStatus", mock.Anything, model.TenantID(3)).Return([]model.ContractStatusCount{}, nil).Maybe()
		projects.On("CountByStatus", mock.Anything, model.TenantID(3)).Return([]model.ProjectStatusCount{}, nil).Maybe()

		sum, err := NewDashboardService(clients, leads, contracts, projects).Summary(ctx, rc)

		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
		assert.Nil(t, sum)
	})
}
