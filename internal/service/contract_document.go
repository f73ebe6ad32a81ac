package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/storage"
	"crmapi/internal/tenancy"
)

// DocumentURLExpiry bounds presigned download links.
const DocumentURLExpiry = 15 * time.Minute

var (
	ErrReaderNil  = fmt.Errorf("%w: reader is nil", errs.ErrInvalidInput)
	ErrNoDocument = fmt.Errorf("%w: contract has no document", errs.ErrNotFound)
)

// ContractDocumentService stores the signed document of a contract in object
// storage under the owning tenant's prefix.
type ContractDocumentService interface {
	// Upload streams r to storage and records the key on the contract. If the
	// record cannot be updated the uploaded object is removed again.
	Upload(ctx context.Context, rc tenancy.RequestContext, contractID int64, r io.Reader, filename, contentType string, size int64) (*model.Contract, error)
	// DownloadURL returns a presigned link to the contract's document.
	DownloadURL(ctx context.Context, rc tenancy.RequestContext, contractID int64) (string, error)
	// Remove deletes the document and clears the key on the contract.
	Remove(ctx context.Context, rc tenancy.RequestContext, contractID int64) (*model.Contract, error)
}

type contractDocumentService struct {
	store     storage.Storage
	contracts repository.ContractRepository
	log       *zap.Logger
}

func NewContractDocumentService(store storage.Storage, contracts repository.ContractRepository, log *zap.Logger) ContractDocumentService {
	return &contractDocumentService{store: store, contracts: contracts, log: log}
}

func (s *contractDocumentService) Upload(ctx context.Context, rc tenancy.RequestContext, contractID int64, r io.Reader, filename, contentType string, size int64) (*model.Contract, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(contractID); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	tenantID := rc.TenantID()

	// Ownership is proven before anything is written to storage.
	current, err := s.contracts.FindByID(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := storage.ContractDocumentKey(tenantID, contractID, uuid.New().String()+ext)

	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filepath.Base(filename),
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: upload to storage: %w", errs.ErrStorageUnavailable, err)
	}

	updated, err := s.contracts.Update(ctx, tenantID, contractID, model.ContractPatch{DocumentKey: &key})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Error("rollback of uploaded document failed",
				zap.String("key", key),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	if old := current.DocumentKey; old != "" && old != key && storage.OwnedBy(old, tenantID) {
		if err := s.store.Delete(ctx, old); err != nil {
			s.log.Warn("previous contract document not removed",
				zap.String("key", old),
				zap.Error(err),
			)
		}
	}
	return updated, nil
}

func (s *contractDocumentService) DownloadURL(ctx context.Context, rc tenancy.RequestContext, contractID int64) (string, error) {
	if err := requireTenant(rc); err != nil {
		return "", err
	}
	if err := requireID(contractID); err != nil {
		return "", err
	}

	c, err := s.contracts.FindByID(ctx, rc.TenantID(), contractID)
	if err != nil {
		return "", err
	}
	if c.DocumentKey == "" || !storage.OwnedBy(c.DocumentKey, rc.TenantID()) {
		return "", ErrNoDocument
	}

	u, err := s.store.PresignGet(ctx, c.DocumentKey, DocumentURLExpiry)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", ErrNoDocument
		}
		return "", fmt.Errorf("%w: presign: %w", errs.ErrStorageUnavailable, err)
	}
	return u, nil
}

func (s *contractDocumentService) Remove(ctx context.Context, rc tenancy.RequestContext, contractID int64) (*model.Contract, error) {
	if err := requireTenant(rc); err != nil {
		return nil, err
	}
	if err := requireID(contractID); err != nil {
		return nil, err
	}
	tenantID := rc.TenantID()

	c, err := s.contracts.FindByID(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if c.DocumentKey == "" {
		return c, nil
	}

	// The key is cleared only once the object is gone.
	if storage.OwnedBy(c.DocumentKey, tenantID) {
		if err := s.store.Delete(ctx, c.DocumentKey); err != nil {
			return nil, fmt.Errorf("%w: delete from storage: %w", errs.ErrStorageUnavailable, err)
		}
	}

	empty := ""
	return s.contracts.Update(ctx, tenantID, contractID, model.ContractPatch{DocumentKey: &empty})
}

// DocumentSweeper removes the stored documents of contracts whose rows are
// already gone. Failures are logged and never fail the delete.
type DocumentSweeper struct {
	store storage.Storage
	log   *zap.Logger
}

func NewDocumentSweeper(store storage.Storage, log *zap.Logger) *DocumentSweeper {
	return &DocumentSweeper{store: store, log: log}
}

func (d *DocumentSweeper) sweep(ctx context.Context, tenantID model.TenantID, keys ...string) {
	if d == nil {
		return
	}
	for _, key := range keys {
		if key == "" || !storage.OwnedBy(key, tenantID) {
			continue
		}
		if err := d.store.Delete(ctx, key); err != nil {
			d.log.Warn("document of deleted contract not removed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}
