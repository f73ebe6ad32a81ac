package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"crmapi/internal/errs"
	"crmapi/internal/model"
	repoMocks "crmapi/internal/repository/mocks"
	"crmapi/internal/storage"
	storeMocks "crmapi/internal/storage/mocks"
)

func isDocKey(prefix, ext string) func(string) bool {
	return func(key string) bool {
		return strings.HasPrefix(key, prefix) && strings.HasSuffix(key, ext)
	}
}

func TestContractDocumentService_Upload(t *testing.T) {
	ctx := context.Background()
	rc := tenantCtx(4)

	t.Run("happy path", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockContractRepository)
		r := strings.NewReader("%PDF-1.7")

		repo.On("FindByID", ctx, model.TenantID(4), int64(17)).Return(&model.Contract{ID: 17, TenantID: 4}, nil)
		store.On("Put", ctx, mock.MatchedBy(isDocKey("tenants/4/contracts/17/", ".pdf")), r, storage.PutObjectOptions{
			Size:        8,
			ContentType: "application/pdf",
			Metadata:    map[string]string{"original-filename": "signed.PDF"},
		}).Return(storage.ObjectInfo{}, nil)
		repo.On("Update", ctx, model.TenantID(4), int64(17), mock.MatchedBy(func(p model.ContractPatch) bool {
			return p.DocumentKey != nil && isDocKey("tenants/4/contracts/17/", ".pdf")(*p.DocumentKey)
		})).Return(&model.Contract{ID: 17, DocumentKey: "tenants/4/contracts/17/x.pdf"}, nil)

		svc := NewContractDocumentService(store, repo, zap.NewNop())
		c, err := svc.Upload(ctx, rc, 17, r, "signed.PDF", "application/pdf", 8)

		require.NoError(t, err)
		assert.NotEmpty(t, c.DocumentKey)
		store.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("contract of another tenant uploads nothing", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockContractRepository)
		repo.On("FindByID", ctx, model.TenantID(4), int64(17)).Return(nil, errs.ErrNotFound)

		svc := NewContractDocumentService(store, repo, zap.NewNop())
		_, err := svc.Upload(ctx, rc, 17, strings.NewReader("x"), "a.pdf", "application/pdf", 1)

		assert.ErrorIs(t, err, errs.ErrNotFound)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("record failure removes the uploaded object", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockContractRepository)
		core, logs := observer.New(zapcore.ErrorLevel)

		repo.On("FindByID", ctx, model.TenantID(4), int64(17)).Return(&model.Contract{ID: 17}, nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		repo.On("Update", ctx, model.TenantID(4), int64(17), mock.Anything).Return(nil, errs.ErrStorageUnavailable)
		store.On("Delete", ctx, mock.MatchedBy(isDocKey("tenants/4/contracts/17/", ".pdf"))).Return(errors.New("minio down"))

		svc := NewContractDocumentService(store, repo, zap.New(core))
		_, err := svc.Upload(ctx, rc, 17, strings.NewReader("x"), "a.pdf", "application/pdf", 1)

		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
		store.AssertExpectations(t)
		assert.Equal(t, 1, logs.FilterMessage("rollback of uploaded document failed").Len())
	})

	t.Run("previous document is replaced", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockContractRepository)
		old := "tenants/4/contracts/17/old.pdf"

		repo.On("FindByID", ctx, model.TenantID(4), int64(17)).Return(&model.Contract{ID: 17, DocumentKey: old}, nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		repo.On("Update", ctx, model.TenantID(4), int64(17), mock.Anything).Return(&model.Contract{ID: 17}, nil)
		store.On("Delete", ctx, old).Return(nil)

		svc := NewContractDocumentService(store, repo, zap.NewNop())
		_, err := svc.Upload(ctx, rc, 17, strings.NewReader("x"), "b.pdf", "application/pdf", 1)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		svc := NewContractDocumentService(new(storeMocks.MockStorage), new(repoMocks.MockContractRepository), zap.NewNop())
		_, err := svc.Upload(ctx, rc, 17, nil, "a.pdf", "application/pdf", 0)
		assert.ErrorIs(t, err, ErrReaderNil)
	})
}

func TestContractDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()
	rc := tenantCtx(4)

	t.Run("presigns an owned key", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockContractRepository)
		key := "tenants/4/contracts/17/a.pdf"
		repo.On("FindByID", ctx, model.TenantID(4), int64(17)).Return(&model.Contract{ID: 17, DocumentKey: key}, nil)
		store.On("PresignGet", ctx, key, DocumentURLExpiry).Return("https://minio/presigned", nil)

		u, err := NewContractDocumentService(store, repo, zap.NewNop()).DownloadURL(ctx, rc, 17)

		require.NoError(t, err)
		assert.Equal(t, "https://minio/presigned", u)
	})

	t.Run("key outside the tenant prefix is refused", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockContractRepository)
		repo.On("FindByID", ctx, model.TenantID(4), int64(17)).
			Return(&model.Contract{ID: 17, DocumentKey: "tenants/5/contracts/17/a.pdf"}, nil)

		_, err := NewContractDocumentService(store, repo, zap.NewNop()).DownloadURL(ctx, rc, 17)

		assert.ErrorIs(t, err, errs.ErrNotFound)
		store.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no document", func(t *testing.T) {
		repo := new(repoMocks.MockContractRepository)
		repo.On("FindByID", ctx, model.TenantID(4), int64(17)).Return(&model.Contract{ID: 17}, nil)

		_, err := NewContractDocumentService(new(storeMocks.MockStorage), repo, zap.NewNop()).DownloadURL(ctx, rc, 17)

		assert.ErrorIs(t, err, ErrNoDocument)
	})
}

func TestContractDocumentService_Remove(t *testing.T) {
	ctx := context.Background()
	rc := tenantCtx(4)
	store := new(storeMocks.MockStorage)
	repo := new(repoMocks.MockContractRepository)
	key := "tenants/4/contracts/17/a.pdf"

	repo.On("FindByID", ctx, model.TenantID(4), int64(17)).Return(&model.Contract{ID: 17, DocumentKey: key}, nil)
	store.On("Delete", ctx, key).Return(nil)
	repo.On("Update", ctx, model.TenantID(4), int64(17), mock.MatchedBy(func(p model.ContractPatch) bool {
		return p.DocumentKey != nil && *p.DocumentKey == ""
	})).Return(&model.Contract{ID: 17}, nil)

	c, err := NewContractDocumentService(store, repo, zap.NewNop()).Remove(ctx, rc, 17)

	require.NoError(t, err)
	assert.Empty(t, c.DocumentKey)
	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}
