package model

import (
	"strings"
	"time"

	"crmapi/internal/errs"
)

// MaxServiceRate bounds the rate column (NUMERIC(12,2)).
const MaxServiceRate = 9_999_999_999.99

// Service is an offering in a tenant's catalogue.
type Service struct {
	ID          int64     `json:"id"`
	TenantID    TenantID  `json:"tenant_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rate        float64   `json:"rate"`
	Code        string    `json:"code"`
	CreatedAt   time.Time `json:"created_at"`
}

type ServiceInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
	Code        string  `json:"code"`
}

func (in ServiceInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errs.Invalid("title")
	}
	return validateRate(in.Rate)
}

type ServicePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Rate        *float64 `json:"rate"`
	Code        *string  `json:"code"`
}

func (p ServicePatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errs.Invalid("title")
	}
	if p.Rate != nil {
		return validateRate(*p.Rate)
	}
	return nil
}

func (p ServicePatch) Columns() map[string]any {
	cols := map[string]any{}
	setIf(cols, "title", p.Title)
	setIf(cols, "description", p.Description)
	setIf(cols, "rate", p.Rate)
	setIf(cols, "code", p.Code)
	return cols
}

func validateRate(r float64) error {
	if r < 0 || r > MaxServiceRate {
		return errs.OutOfRange("rate", 0, MaxServiceRate)
	}
	return nil
}
