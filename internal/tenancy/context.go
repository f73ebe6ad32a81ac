package tenancy

import "crmapi/internal/model"

// RequestContext binds one inbound request to its validated tenant.
// It is a value type with unexported fields: copies cannot be altered and the
// zero value is never mistaken for a tenant.
type RequestContext struct {
	tenant model.Tenant
	valid  bool
}

// NewRequestContext wraps a tenant record that has already passed validation.
func NewRequestContext(t model.Tenant) RequestContext {
	return RequestContext{tenant: t, valid: true}
}

func (rc RequestContext) TenantID() model.TenantID { return rc.tenant.ID }

// Tenant returns a copy of the tenant snapshot taken at validation time.
func (rc RequestContext) Tenant() model.Tenant { return rc.tenant }

// Valid reports whether rc was produced by NewRequestContext.
func (rc RequestContext) Valid() bool { return rc.valid }
