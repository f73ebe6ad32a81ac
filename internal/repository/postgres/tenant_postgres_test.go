package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmapi/internal/errs"
	"crmapi/internal/model"
)

func TestTenantPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTenantPostgres(db, nil)
	ctx := context.Background()
	cols := []string{"id", "company_name", "contact_name", "is_active", "created_at"}

	t.Run("inactive rows are returned as is", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM tenants WHERE id = \\$1").
			WithArgs(4).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(4, "Initech", "Bill", false, time.Now()))

		tn, err := repo.FindByID(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, model.TenantID(4), tn.ID)
		assert.False(t, tn.IsActive)
	})

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectQuery("FROM tenants").
			WithArgs(999).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, 999)

		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagePostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStagePostgres(db, nil)

	mock.ExpectQuery("SELECT id, name, description, sort_order FROM stages ORDER BY sort_order, id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "sort_order"}).
			AddRow(1, "New", "", 1).
			AddRow(2, "Qualified", "", 2))

	stages, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, "Qualified", stages[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
