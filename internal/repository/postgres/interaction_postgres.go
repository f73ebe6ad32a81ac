package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/database"
	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const interactionSelect = `i.id, i.tenant_id, i.client_id, i.opportunity_id, i.interaction_type, i.notes, i.next_steps,
	i.interaction_date, i.reminder_date, i.created_by, i.created_at, COALESCE(u.user_name, '')`

// authorJoin only resolves authors of the interaction's own tenant.
const authorJoin = "users u ON u.id = i.created_by AND u.tenant_id = i.tenant_id"

// InteractionPostgres reads the contact history of clients.
type InteractionPostgres struct {
	base
}

func NewInteractionPostgres(db *sql.DB, reads *database.ReadRetrier) *InteractionPostgres {
	return &InteractionPostgres{base{db: db, reads: reads}}
}

var _ repository.InteractionRepository = (*InteractionPostgres)(nil)

func scanInteraction(rs rowScanner) (*model.Interaction, error) {
	var (
		i             model.Interaction
		lead, author  sql.NullInt64
		day, reminder sql.NullTime
	)
	if err := rs.Scan(
		&i.ID,
		&i.TenantID,
		&i.ClientID,
		&lead,
		&i.Type,
		&i.Notes,
		&i.NextSteps,
		&day,
		&reminder,
		&author,
		&i.CreatedAt,
		&i.CreatedByName,
	); err != nil {
		return nil, err
	}
	i.OpportunityID = nullInt64(lead)
	i.CreatedBy = nullInt64(author)
	i.InteractionDate = model.DateOf(day.Time)
	i.ReminderDate = nullDate(reminder)
	return &i, nil
}

// ListByClient returns the client's interactions matching f. A client of
// another tenant yields an empty list.
func (r *InteractionPostgres) ListByClient(ctx context.Context, tenantID model.TenantID, clientID int64, f model.InteractionFilter) ([]model.Interaction, error) {
	b := psql.Select(interactionSelect).
		From("interactions i").
		Join("clients c ON c.id = i.client_id").
		LeftJoin(authorJoin).
		Where("c.tenant_id = ?", tenantID).
		Where("i.tenant_id = ?", tenantID).
		Where("i.client_id = ?", clientID).
		OrderBy("i.interaction_date DESC", "i.id DESC")
	if f.Type != "" {
		b = b.Where("i.interaction_type = ?", f.Type)
	}
	if f.CreatedBy > 0 {
		b = b.Where("i.created_by = ?", f.CreatedBy)
	}
	stmt, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, stmt, args...)
}

// ListByOpportunity returns the interactions about a lead. The lead has no
// tenant column, so ownership is proven through its client.
func (r *InteractionPostgres) ListByOpportunity(ctx context.Context, tenantID model.TenantID, opportunityID int64) ([]model.Interaction, error) {
	const stmt = `
		SELECT ` + interactionSelect + `
		FROM interactions i
		JOIN opportunities o ON o.id = i.opportunity_id
		JOIN clients c ON c.id = o.client_id
		LEFT JOIN ` + authorJoin + `
		WHERE c.tenant_id = $1 AND i.tenant_id = $1 AND o.id = $2
		ORDER BY i.interaction_date DESC, i.id DESC
	`
	return r.query(ctx, stmt, tenantID, opportunityID)
}

func (r *InteractionPostgres) query(ctx context.Context, stmt string, args ...any) ([]model.Interaction, error) {
	var out []model.Interaction
	err := r.read(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]model.Interaction, 0)
		for rows.Next() {
			i, err := scanInteraction(rows)
			if err != nil {
				return err
			}
			out = append(out, *i)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return out, nil
}
