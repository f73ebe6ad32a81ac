package model

import (
	"strings"
	"time"

	"crmapi/internal/errs"
)

// Client is a customer company owned directly by a tenant.
type Client struct {
	ID          int64     `json:"id"`
	TenantID    TenantID  `json:"tenant_id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	PostCode    string    `json:"post_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClientInput carries the fields of a new client.
type ClientInput struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	PostCode    string `json:"post_code"`
}

func (in ClientInput) Validate() error {
	if strings.TrimSpace(in.CompanyName) == "" {
		return errs.Invalid("company_name")
	}
	return nil
}

// ClientPatch holds a partial update; nil fields are left untouched.
type ClientPatch struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	PostCode    *string `json:"post_code"`
}

func (p ClientPatch) Validate() error {
	if p.CompanyName != nil && strings.TrimSpace(*p.CompanyName) == "" {
		return errs.Invalid("company_name")
	}
	return nil
}

// Columns returns the column/value pairs present in the patch.
func (p ClientPatch) Columns() map[string]any {
	cols := map[string]any{}
	setIf(cols, "company_name", p.CompanyName)
	setIf(cols, "contact_name", p.ContactName)
	setIf(cols, "email", p.Email)
	setIf(cols, "phone", p.Phone)
	setIf(cols, "address", p.Address)
	setIf(cols, "post_code", p.PostCode)
	return cols
}

func setIf[T any](cols map[string]any, name string, v *T) {
	if v != nil {
		cols[name] = *v
	}
}
