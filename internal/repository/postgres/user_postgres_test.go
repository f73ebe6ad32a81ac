package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmapi/internal/errs"
)

var userCols = []string{"id", "tenant_id", "role_id", "user_name", "email", "is_active", "created_at", "role_name", "role_code"}

func TestUserPostgres_List(t *testing.T) {
	ctx := context.Background()

	t.Run("active only by default", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserPostgres(db, nil)
		mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN roles r ON r.id = u.role_id WHERE u.tenant_id = $1 AND u.is_active = TRUE ORDER BY u.user_name, u.id")).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(2, 1, 1, "ana", "ana@acme.test", true, time.Now(), "Administrator", "ADMIN").
				AddRow(3, 1, nil, "bo", "", true, time.Now(), "", ""))

		users, err := repo.List(ctx, 1, false)

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "ADMIN", users[0].RoleCode)
		assert.Nil(t, users[1].RoleID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inactive included on request", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserPostgres(db, nil)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE u.tenant_id = $1 ORDER BY u.user_name, u.id")).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(userCols))

		users, err := repo.List(ctx, 1, true)

		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserPostgres_ListByRole(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.tenant_id = $1 AND u.role_id = $2 AND u.is_active = TRUE")).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(4, 1, 2, "cy", "", true, time.Now(), "Project Manager", "PM"))

	users, err := repo.ListByRole(context.Background(), 1, 2)

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Project Manager", users[0].RoleName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE u.tenant_id = $1 AND u.id = $2")).
		WithArgs(2, 4).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 2, 4)

	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
