package tenancy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository/mocks"
)

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("builds an immutable context", func(t *testing.T) {
		repo := new(mocks.MockTenantRepository)
		v, _ := NewValidator(repo, nil)
		r := NewResolver(NewHeaderExtractor("X-Tenant-ID"), v)
		repo.On("FindByID", ctx, model.TenantID(3)).Return(&model.Tenant{ID: 3, CompanyName: "Initech", IsActive: true}, nil)

		rc, err := r.Resolve(ctx, headers{"X-Tenant-ID": "3"})

		require.NoError(t, err)
		assert.True(t, rc.Valid())
		assert.Equal(t, model.TenantID(3), rc.TenantID())
		assert.Equal(t, "Initech", rc.Tenant().CompanyName)
		assert.Equal(t, PolicyHeader, r.Policy())
	})

	t.Run("missing identifier stops before the registry", func(t *testing.T) {
		repo := new(mocks.MockTenantRepository)
		v, _ := NewValidator(repo, nil)
		r := NewResolver(NewHeaderExtractor("X-Tenant-ID"), v)

		rc, err := r.Resolve(ctx, headers{})

		assert.ErrorIs(t, err, errs.ErrMissingIdentifier)
		assert.False(t, rc.Valid())
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("token claim flows into validation", func(t *testing.T) {
		repo := new(mocks.MockTenantRepository)
		v, _ := NewValidator(repo, nil)
		r := NewResolver(NewClaimExtractor(&stubVerifier{claims: map[string]any{"tenant_id": float64(8)}}, "tenant_id"), v)
		repo.On("FindByID", ctx, model.TenantID(8)).Return(&model.Tenant{ID: 8, IsActive: false}, nil)

		_, err := r.Resolve(ctx, headers{"Authorization": "Bearer tok"})

		assert.ErrorIs(t, err, errs.ErrTenantInactive)
	})
}

func TestRequestContext_ZeroValue(t *testing.T) {
	var rc RequestContext
	assert.False(t, rc.Valid())
	assert.Equal(t, model.TenantID(0), rc.TenantID())
}
