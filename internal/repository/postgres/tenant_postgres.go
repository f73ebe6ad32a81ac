package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/database"
	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// TenantPostgres reads the tenant registry.
type TenantPostgres struct {
	base
}

func NewTenantPostgres(db *sql.DB, reads *database.ReadRetrier) *TenantPostgres {
	return &TenantPostgres{base{db: db, reads: reads}}
}

var _ repository.TenantRepository = (*TenantPostgres)(nil)

// FindByID returns the tenant row regardless of its active flag; the caller decides.
func (r *TenantPostgres) FindByID(ctx context.Context, id model.TenantID) (*model.Tenant, error) {
	const q = `
		SELECT id, company_name, contact_name, is_active, created_at
		FROM tenants
		WHERE id = $1
	`
	var t model.Tenant
	err := r.read(ctx, func() error {
		return r.db.QueryRowContext(ctx, q, id).Scan(
			&t.ID,
			&t.CompanyName,
			&t.ContactName,
			&t.IsActive,
			&t.CreatedAt,
		)
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return &t, nil
}

// StagePostgres reads the shared pipeline stages.
type StagePostgres struct {
	base
}

func NewStagePostgres(db *sql.DB, reads *database.ReadRetrier) *StagePostgres {
	return &StagePostgres{base{db: db, reads: reads}}
}

var _ repository.StageRepository = (*StagePostgres)(nil)

func (r *StagePostgres) List(ctx context.Context) ([]model.Stage, error) {
	const q = `SELECT id, name, description, sort_order FROM stages ORDER BY sort_order, id`

	var items []model.Stage
	err := r.read(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, q)
		if err != nil {
			return err
		}
		defer rows.Close()

		items = make([]model.Stage, 0)
		for rows.Next() {
			var s model.Stage
			if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Order); err != nil {
				return err
			}
			items = append(items, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return items, nil
}
