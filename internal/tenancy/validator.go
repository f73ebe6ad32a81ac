package tenancy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// Validator resolves a raw identifier against the tenant registry.
// Results are not cached: a deactivated tenant is rejected on its next request.
type Validator struct {
	tenants  repository.TenantRepository
	outcomes *prometheus.CounterVec
}

// NewValidator builds a Validator. reg may be nil to skip metric registration.
func NewValidator(tenants repository.TenantRepository, reg prometheus.Registerer) (*Validator, error) {
	v := &Validator{
		tenants: tenants,
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenant_validations_total",
				Help: "Tenant validations by outcome.",
			},
			[]string{"outcome"},
		),
	}
	if reg != nil {
		if err := reg.Register(v.outcomes); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// ParseTenantID converts a raw identifier into the canonical key type.
func ParseTenantID(raw string) (model.TenantID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errs.ErrMalformedIdentifier, raw)
	}
	return model.TenantID(id), nil
}

// Validate returns the tenant record for raw, or one of ErrMalformedIdentifier,
// ErrTenantNotFound, ErrTenantInactive or ErrStorageUnavailable. There is no
// fallback tenant.
func (v *Validator) Validate(ctx context.Context, raw string) (model.Tenant, error) {
	t, err := v.validate(ctx, raw)
	v.outcomes.WithLabelValues(outcomeLabel(err)).Inc()
	return t, err
}

func (v *Validator) validate(ctx context.Context, raw string) (model.Tenant, error) {
	id, err := ParseTenantID(raw)
	if err != nil {
		return model.Tenant{}, err
	}

	t, err := v.tenants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Tenant{}, fmt.Errorf("%w: %d", errs.ErrTenantNotFound, id)
		}
		return model.Tenant{}, errs.Storage(err)
	}
	if !t.IsActive {
		return model.Tenant{}, fmt.Errorf("%w: %d", errs.ErrTenantInactive, id)
	}
	return *t, nil
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return strings.ToLower(errs.Kind(err))
}
