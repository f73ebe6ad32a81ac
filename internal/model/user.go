package model

import "time"

// User is a staff account of a tenant. Users are provisioned out of band and
// are read-only to this service.
type User struct {
	ID        int64     `json:"id"`
	TenantID  TenantID  `json:"tenant_id"`
	RoleID    *int64    `json:"role_id,omitempty"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	// Joined from the shared role table.
	RoleName string `json:"role_name,omitempty"`
	RoleCode string `json:"role_code,omitempty"`
}
