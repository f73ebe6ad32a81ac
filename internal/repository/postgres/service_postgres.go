package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/database"
	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const serviceColumns = "id, tenant_id, title, description, rate, code, created_at"

// ServicePostgres stores the tenant's service catalogue.
type ServicePostgres struct {
	base
}

func NewServicePostgres(db *sql.DB, reads *database.ReadRetrier) *ServicePostgres {
	return &ServicePostgres{base{db: db, reads: reads}}
}

var _ repository.ServiceRepository = (*ServicePostgres)(nil)

func scanService(rs rowScanner) (*model.Service, error) {
	var s model.Service
	if err := rs.Scan(&s.ID, &s.TenantID, &s.Title, &s.Description, &s.Rate, &s.Code, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServicePostgres) List(ctx context.Context, tenantID model.TenantID, pq repository.PageQuery) (*repository.PageResult[model.Service], error) {
	const qCount = `SELECT COUNT(*) FROM services WHERE tenant_id = $1`
	const qList = `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE tenant_id = $1
		ORDER BY title, id
		LIMIT $2 OFFSET $3
	`

	var res *repository.PageResult[model.Service]
	err := r.read(ctx, func() error {
		total, err := count(ctx, r.db, qCount, tenantID)
		if err != nil {
			return err
		}

		rows, err := r.db.QueryContext(ctx, qList, tenantID, pq.Limit, pq.Offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		items := make([]model.Service, 0)
		for rows.Next() {
			s, err := scanService(rows)
			if err != nil {
				return err
			}
			items = append(items, *s)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		res = &repository.PageResult[model.Service]{Items: items, Total: total}
		return nil
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return res, nil
}

func (r *ServicePostgres) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Service, error) {
	const stmt = `SELECT ` + serviceColumns + ` FROM services WHERE tenant_id = $1 AND id = $2`

	var s *model.Service
	err := r.read(ctx, func() error {
		var err error
		s, err = scanService(r.db.QueryRowContext(ctx, stmt, tenantID, id))
		return err
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return s, nil
}

func (r *ServicePostgres) Create(ctx context.Context, tenantID model.TenantID, in model.ServiceInput) (*model.Service, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	const stmt = `
		INSERT INTO services (tenant_id, title, description, rate, code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + serviceColumns

	s, err := scanService(r.db.QueryRowContext(ctx, stmt, tenantID, in.Title, in.Description, in.Rate, in.Code))
	if err != nil {
		return nil, errs.Storage(err)
	}
	return s, nil
}

func (r *ServicePostgres) Update(ctx context.Context, tenantID model.TenantID, id int64, p model.ServicePatch) (*model.Service, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cols := p.Columns()
	if len(cols) == 0 {
		return r.FindByID(ctx, tenantID, id)
	}

	stmt, args, err := psql.Update("services").
		SetMap(cols).
		Where("tenant_id = ?", tenantID).
		Where("id = ?", id).
		Suffix("RETURNING " + serviceColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanService(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, errs.Storage(err)
	}
	return s, nil
}

func (r *ServicePostgres) Delete(ctx context.Context, tenantID model.TenantID, id int64) (bool, error) {
	const stmt = `DELETE FROM services WHERE tenant_id = $1 AND id = $2`
	return deleted(ctx, r.db, stmt, tenantID, id)
}
