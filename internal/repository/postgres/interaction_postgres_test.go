package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmapi/internal/errs"
	"crmapi/internal/model"
)

var interactionCols = []string{"id", "tenant_id", "client_id", "opportunity_id", "interaction_type", "notes", "next_steps",
	"interaction_date", "reminder_date", "created_by", "created_at", "user_name"}

func TestInteractionPostgres_ListByClient(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInteractionPostgres(db, nil)
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM interactions i JOIN clients c ON c.id = i.client_id LEFT JOIN users u ON u.id = i.created_by AND u.tenant_id = i.tenant_id WHERE c.tenant_id = $1 AND i.tenant_id = $2 AND i.client_id = $3 AND i.interaction_type = $4 ORDER BY i.interaction_date DESC, i.id DESC")).
		WithArgs(1, 1, 5, "call").
		WillReturnRows(sqlmock.NewRows(interactionCols).
			AddRow(9, 1, 5, 40, "call", "Discussed renewal", "Send quote", day, nil, 2, time.Now(), "ana"))

	out, err := repo.ListByClient(context.Background(), 1, 5, model.InteractionFilter{Type: "call"})

	require.NoError(t, err)
	require.Len(t, out, 1)
	i := out[0]
	assert.Equal(t, "2024-05-02", i.InteractionDate.String())
	assert.Nil(t, i.ReminderDate)
	require.NotNil(t, i.OpportunityID)
	assert.Equal(t, int64(40), *i.OpportunityID)
	assert.Equal(t, "ana", i.CreatedByName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionPostgres_ListByOpportunity(t *testing.T) {
	ctx := context.Background()
	stmt := regexp.QuoteMeta("JOIN opportunities o ON o.id = i.opportunity_id JOIN clients c ON c.id = o.client_id")

	t.Run("scoped through the lead's client", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewInteractionPostgres(db, nil)
		mock.ExpectQuery(stmt + regexp.QuoteMeta(" LEFT JOIN users u ON u.id = i.created_by AND u.tenant_id = i.tenant_id WHERE c.tenant_id = $1 AND i.tenant_id = $1 AND o.id = $2")).
			WithArgs(2, 40).
			WillReturnRows(sqlmock.NewRows(interactionCols))

		out, err := repo.ListByOpportunity(ctx, 2, 40)

		require.NoError(t, err)
		assert.Empty(t, out)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver failure is storage unavailable", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewInteractionPostgres(db, nil)
		mock.ExpectQuery(stmt).WillReturnError(errors.New("connection refused"))

		_, err := repo.ListByOpportunity(ctx, 2, 40)

		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}
