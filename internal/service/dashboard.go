package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/tenancy"
)

type DashboardSummary struct {
	Tenant    TenantSummary   `json:"tenant"`
	Clients   ClientSummary   `json:"clients"`
	Leads     LeadSummary     `json:"leads"`
	Contracts ContractSummary `json:"contracts"`
	Projects  ProjectSummary  `json:"projects"`
}

type TenantSummary struct {
	ID          model.TenantID `json:"id"`
	CompanyName string         `json:"company_name"`
}

type ClientSummary struct {
	Total int `json:"total"`
}

type LeadSummary struct {
	Total      int                `json:"total"`
	TotalValue int64              `json:"total_value"`
	ByStage    []model.StageCount `json:"by_stage"`
}

type ContractSummary struct {
	Total       int   `json:"total"`
	Active      int   `json:"active"`
	Pending     int   `json:"pending"`
	Expired     int   `json:"expired"`
	ActiveValue int64 `json:"active_value"`
}

type ProjectSummary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	OnHold    int `json:"on_hold"`
}

// DashboardService folds the tenant's scoped statistics into one read-only summary.
type DashboardService interface {
	Summary(ctx context.Context, rc tenancy.RequestContext) (*DashboardSummary, error)
}

type dashboardService struct {
	clients   repository.ClientRepository
	leads     repository.OpportunityRepository
	contracts repository.ContractRepository
	projects  repository.ProjectRepository
}

func NewDashboardService(clients repository.ClientRepository, leads repository.OpportunityRepository, contracts repository.ContractRepository, projects repository.ProjectRepository) DashboardService {
	return &dashboardService{clients: clients, leads: leads, contracts: contracts, projects: projects}
}

// Summary runs the four scoped queries concurrently. The first failure
// cancels the others and is returned as is.
func (s *dashboardService) Summary(ctx context.Context, rc tenancy.RequestContext) (*DashboardSummary, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	tenantID := rc.TenantID()

	var (
		clientTotal int
		byStage     []model.StageCount
		byStatus    []model.ContractStatusCount
		byProject   []model.ProjectStatusCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.clients.Count(gctx, tenantID)
		clientTotal = n
		return err
	})
	g.Go(func() error {
		rows, err := s.leads.CountByStage(gctx, tenantID)
		byStage = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.contracts.CountByStatus(gctx, tenantID)
		byStatus = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.projects.CountByStatus(gctx, tenantID)
		byProject = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := rc.Tenant()
	out := &DashboardSummary{
		Tenant:    TenantSummary{ID: t.ID, CompanyName: t.CompanyName},
		Clients:   ClientSummary{Total: clientTotal},
		Leads:     foldLeads(byStage),
		Contracts: foldContracts(byStatus),
		Projects:  foldProjects(byProject),
	}
	return out, nil
}

func foldLeads(rows []model.StageCount) LeadSummary {
	ls := LeadSummary{ByStage: make([]model.StageCount, 0, len(rows))}
	for _, r := range rows {
		ls.Total += r.Count
		ls.TotalValue += r.Value
		ls.ByStage = append(ls.ByStage, r)
	}
	return ls
}

func foldContracts(rows []model.ContractStatusCount) ContractSummary {
	var cs ContractSummary
	for _, r := range rows {
		cs.Total += r.Count
		switch r.Status {
		case model.ContractActive:
			cs.Active += r.Count
			cs.ActiveValue += r.Value
		case model.ContractPending:
			cs.Pending += r.Count
		case model.ContractExpired:
			cs.Expired += r.Count
		}
	}
	return cs
}

func foldProjects(rows []model.ProjectStatusCount) ProjectSummary {
	var ps ProjectSummary
	for _, r := range rows {
		ps.Total += r.Count
		switch r.Status {
		case model.ProjectActive:
			ps.Active += r.Count
		case model.ProjectCompleted:
			ps.Completed += r.Count
		case model.ProjectOnHold:
			ps.OnHold += r.Count
		}
	}
	return ps
}
