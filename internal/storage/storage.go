// Package storage holds contract documents in an S3-compatible object store.
// Objects are streamed; nothing touches local disk. Every key lives under the
// owning tenant's prefix.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"crmapi/internal/model"
)

var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 if unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store used for contract documents.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Ping checks that the bucket is reachable.
	Ping(ctx context.Context) error
}

// TenantPrefix is the key prefix reserved for one tenant.
func TenantPrefix(tenantID model.TenantID) string {
	return fmt.Sprintf("tenants/%d/", tenantID)
}

// ContractDocumentKey builds tenants/<tenant>/contracts/<contract>/<name>.
func ContractDocumentKey(tenantID model.TenantID, contractID int64, name string) string {
	return TenantPrefix(tenantID) + path.Join("contracts", fmt.Sprint(contractID), path.Base(name))
}

// OwnedBy reports whether key sits under tenantID's prefix. Keys with
// traversal segments never match.
func OwnedBy(key string, tenantID model.TenantID) bool {
	if strings.Contains(key, "..") {
		return false
	}
	return strings.HasPrefix(key, TenantPrefix(tenantID))
}
