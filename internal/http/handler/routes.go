package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crmapi/internal/http/middleware"
	"crmapi/internal/service"
	"crmapi/internal/storage"
	"crmapi/internal/tenancy"
)

// Deps carries everything the routes need.
type Deps struct {
	DB    *sql.DB
	Store storage.Storage

	// CRM resolves tenants from the tenant header; Portal from a bearer token claim.
	CRM    *tenancy.Resolver
	Portal *tenancy.Resolver

	Clients      service.ClientService
	Leads        service.LeadService
	Contracts    service.ContractService
	Documents    service.ContractDocumentService
	Catalog      service.CatalogService
	Dashboard    service.DashboardService
	Projects     service.ProjectService
	Users        service.UserService
	Interactions service.InteractionService

	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Every route family is bound to exactly one tenant extraction policy.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB, d.Store))
	app.Get("/healthz", Liveness())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	crm := app.Group("/api/crm")
	withTenant := func(h middleware.TenantHandler) fiber.Handler {
		return middleware.RequireTenant(d.CRM, fail, h)
	}

	crm.Get("/clients", withTenant(listClients(d.Clients)))
	crm.Post("/clients", withTenant(createClient(d.Clients)))
	crm.Get("/clients/:id", withTenant(getClient(d.Clients)))
	crm.Patch("/clients/:id", withTenant(updateClient(d.Clients)))
	crm.Delete("/clients/:id", withTenant(deleteClient(d.Clients)))
	crm.Get("/clients/:id/interactions", withTenant(clientInteractions(d.Interactions)))

	crm.Get("/leads", withTenant(listLeads(d.Leads)))
	crm.Post("/leads", withTenant(createLead(d.Leads)))
	crm.Post("/leads/with-client", withTenant(createLeadWithClient(d.Leads)))
	crm.Get("/leads/:id", withTenant(getLead(d.Leads)))
	crm.Patch("/leads/:id", withTenant(updateLead(d.Leads)))
	crm.Delete("/leads/:id", withTenant(deleteLead(d.Leads)))
	crm.Get("/leads/:id/interactions", withTenant(leadInteractions(d.Interactions)))

	crm.Get("/contracts", withTenant(listContracts(d.Contracts)))
	crm.Post("/contracts", withTenant(createContract(d.Contracts)))
	crm.Get("/contracts/:id", withTenant(getContract(d.Contracts)))
	crm.Patch("/contracts/:id", withTenant(updateContract(d.Contracts)))
	crm.Delete("/contracts/:id", withTenant(deleteContract(d.Contracts)))
	crm.Post("/contracts/:id/document", withTenant(uploadContractDocument(d.Documents)))
	crm.Get("/contracts/:id/document", withTenant(contractDocumentURL(d.Documents)))
	crm.Delete("/contracts/:id/document", withTenant(removeContractDocument(d.Documents)))

	crm.Get("/projects", withTenant(listProjects(d.Projects)))
	crm.Get("/projects/:id", withTenant(getProject(d.Projects)))

	crm.Get("/users", withTenant(listUsers(d.Users)))
	crm.Get("/users/:id", withTenant(getUser(d.Users)))

	crm.Get("/services", withTenant(listServices(d.Catalog)))
	crm.Post("/services", withTenant(createService(d.Catalog)))
	crm.Get("/services/:id", withTenant(getService(d.Catalog)))
	crm.Patch("/services/:id", withTenant(updateService(d.Catalog)))
	crm.Delete("/services/:id", withTenant(deleteService(d.Catalog)))

	crm.Get("/stages", withTenant(listStages(d.Catalog)))
	crm.Get("/dashboard", withTenant(dashboardSummary(d.Dashboard)))

	// Read-only views for tenant users holding a signed token.
	portal := app.Group("/api/portal")
	withClaim := func(h middleware.TenantHandler) fiber.Handler {
		return middleware.RequireTenant(d.Portal, fail, h)
	}

	portal.Get("/dashboard", withClaim(dashboardSummary(d.Dashboard)))
	portal.Get("/leads", withClaim(listLeads(d.Leads)))
	portal.Get("/leads/:id", withClaim(getLead(d.Leads)))
}
