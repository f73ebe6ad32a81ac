package model

import "time"

// TenantID is the canonical tenant key used by every repository call.
type TenantID int64

// Tenant is an organization sharing the schema. Rows are provisioned out of band
// and are read-only to this service.
type Tenant struct {
	ID          TenantID  `json:"id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
