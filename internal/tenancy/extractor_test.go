package tenancy

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmapi/internal/errs"
)

type headers map[string]string

func (h headers) Header(name string) string { return h[name] }

type stubVerifier struct {
	claims map[string]any
	err    error
	got    string
}

func (s *stubVerifier) Verify(token string) (map[string]any, error) {
	s.got = token
	return s.claims, s.err
}

func TestExtractor_Header(t *testing.T) {
	e := NewHeaderExtractor("X-Tenant-ID")
	assert.Equal(t, PolicyHeader, e.Policy())

	tests := []struct {
		name    string
		req     headers
		want    string
		wantErr error
	}{
		{"present", headers{"X-Tenant-ID": "7"}, "7", nil},
		{"trimmed", headers{"X-Tenant-ID": "  7 "}, "7", nil},
		{"absent", headers{}, "", errs.ErrMissingIdentifier},
		{"blank", headers{"X-Tenant-ID": "   "}, "", errs.ErrMissingIdentifier},
		{"bearer token is ignored", headers{"Authorization": "Bearer abc"}, "", errs.ErrMissingIdentifier},
		{"non-numeric passes through to validation", headers{"X-Tenant-ID": "acme"}, "acme", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_TokenClaim(t *testing.T) {
	t.Run("numeric claim is canonicalised", func(t *testing.T) {
		v := &stubVerifier{claims: map[string]any{"tenant_id": float64(42)}}
		e := NewClaimExtractor(v, "tenant_id")

		got, err := e.Extract(headers{"Authorization": "Bearer tok"})

		require.NoError(t, err)
		assert.Equal(t, "42", got)
		assert.Equal(t, "tok", v.got)
		assert.Equal(t, PolicyTokenClaim, e.Policy())
	})

	t.Run("header identifier is ignored", func(t *testing.T) {
		e := NewClaimExtractor(&stubVerifier{}, "tenant_id")
		_, err := e.Extract(headers{"X-Tenant-ID": "7"})
		assert.ErrorIs(t, err, errs.ErrMissingIdentifier)
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		e := NewClaimExtractor(&stubVerifier{}, "tenant_id")
		_, err := e.Extract(headers{"Authorization": "Basic dXNlcjpwdw=="})
		assert.ErrorIs(t, err, errs.ErrMissingIdentifier)
	})

	t.Run("verification failure", func(t *testing.T) {
		e := NewClaimExtractor(&stubVerifier{err: errors.New("signature is invalid")}, "tenant_id")
		_, err := e.Extract(headers{"Authorization": "Bearer tok"})
		assert.ErrorIs(t, err, errs.ErrInvalidCredential)
	})

	t.Run("claim absent", func(t *testing.T) {
		e := NewClaimExtractor(&stubVerifier{claims: map[string]any{"sub": "u1"}}, "tenant_id")
		_, err := e.Extract(headers{"Authorization": "Bearer tok"})
		assert.ErrorIs(t, err, errs.ErrMissingIdentifier)
	})
}

func TestClaimToRaw(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr error
	}{
		{"float", float64(9), "9", nil},
		{"fraction", 1.5, "", errs.ErrMalformedIdentifier},
		{"huge", 1e300, "", errs.ErrMalformedIdentifier},
		{"json number", json.Number("12"), "12", nil},
		{"int64", int64(3), "3", nil},
		{"int", 4, "4", nil},
		{"string", "5", "5", nil},
		{"empty string", "", "", errs.ErrMissingIdentifier},
		{"nil", nil, "", errs.ErrMissingIdentifier},
		{"array", []any{1}, "", errs.ErrMalformedIdentifier},
		{"bool", true, "", errs.ErrMalformedIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := claimToRaw(tt.in, "tenant_id")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
