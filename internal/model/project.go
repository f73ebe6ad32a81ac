package model

import "time"

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectOnHold    ProjectStatus = "On Hold"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// Project is delivery work for the tenant. Unlike leads it carries its own
// tenant column; the client and lead references are optional.
type Project struct {
	ID               int64         `json:"id"`
	TenantID         TenantID      `json:"tenant_id"`
	ClientID         *int64        `json:"client_id,omitempty"`
	OpportunityID    *int64        `json:"opportunity_id,omitempty"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Status           ProjectStatus `json:"status"`
	StartDate        *Date         `json:"start_date,omitempty"`
	EndDate          *Date         `json:"end_date,omitempty"`
	ProjectManagerID *int64        `json:"project_manager_id,omitempty"`
	Address          string        `json:"address"`
	CreatedAt        time.Time     `json:"created_at"`

	// Joined from the manager's user row.
	ProjectManagerName string `json:"project_manager_name,omitempty"`
}

// ProjectFilter narrows a project listing. Zero fields are ignored.
type ProjectFilter struct {
	Status           ProjectStatus
	ProjectManagerID int64
}

// ProjectStatusCount is one row of the per-status project breakdown.
type ProjectStatusCount struct {
	Status ProjectStatus
	Count  int
}
