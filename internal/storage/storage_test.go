package storage

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"crmapi/internal/config"
)

func TestContractDocumentKey(t *testing.T) {
	assert.Equal(t, "tenants/4/contracts/17/abc.pdf", ContractDocumentKey(4, 17, "abc.pdf"))
	assert.Equal(t, "tenants/4/contracts/17/passwd", ContractDocumentKey(4, 17, "../../etc/passwd"))
}

func TestOwnedBy(t *testing.T) {
	assert.True(t, OwnedBy("tenants/4/contracts/17/abc.pdf", 4))
	assert.False(t, OwnedBy("tenants/40/contracts/17/abc.pdf", 4))
	assert.False(t, OwnedBy("tenants/4/../5/contracts/1/x", 4))
	assert.False(t, OwnedBy("", 4))
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))

	missing := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	assert.ErrorIs(t, translate(missing), ErrObjectNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestNewMinIO_ValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
	}{
		{"no endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "b", Bucket: "c"}},
		{"no credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "c"}},
		{"no bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMinIO(context.Background(), tt.cfg, zap.NewNop())
			assert.Error(t, err)
		})
	}
}
