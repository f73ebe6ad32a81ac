package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/database"
	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const clientColumns = "id, tenant_id, company_name, contact_name, email, phone, address, post_code, created_at"

// ClientPostgres is the PostgreSQL implementation of repository.ClientRepository.
// Every statement constrains on tenant_id.
type ClientPostgres struct {
	base
}

// NewClientPostgres creates a new ClientPostgres repository.
func NewClientPostgres(db *sql.DB, reads *database.ReadRetrier) *ClientPostgres {
	return &ClientPostgres{base{db: db, reads: reads}}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

func scanClient(rs rowScanner) (*model.Client, error) {
	var c model.Client
	if err := rs.Scan(
		&c.ID,
		&c.TenantID,
		&c.CompanyName,
		&c.ContactName,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.PostCode,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the tenant's clients, newest first, with a total count.
func (r *ClientPostgres) List(ctx context.Context, tenantID model.TenantID, pq repository.PageQuery) (*repository.PageResult[model.Client], error) {
	const qCount = `SELECT COUNT(*) FROM clients WHERE tenant_id = $1`
	const qList = `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE tenant_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	var res *repository.PageResult[model.Client]
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

		items := make([]model.Client, 0)
		for rows.Next() {
			c, err := scanClient(rows)
			if err != nil {
				return err
			}
			items = append(items, *c)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		res = &repository.PageResult[model.Client]{Items: items, Total: total}
		return nil
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return res, nil
}

// FindByID returns the client only when it belongs to tenantID.
func (r *ClientPostgres) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Client, error) {
	const stmt = `SELECT ` + clientColumns + ` FROM clients WHERE tenant_id = $1 AND id = $2`

	var c *model.Client
	err := r.read(ctx, func() error {
		var err error
		c, err = scanClient(r.db.QueryRowContext(ctx, stmt, tenantID, id))
		return err
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return c, nil
}

// Create inserts a client owned by tenantID.
func (r *ClientPostgres) Create(ctx context.Context, tenantID model.TenantID, in model.ClientInput) (*model.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := insertClient(ctx, r.db, tenantID, in)
	if err != nil {
		return nil, errs.Storage(err)
	}
	return c, nil
}

func insertClient(ctx context.Context, q querier, tenantID model.TenantID, in model.ClientInput) (*model.Client, error) {
	const stmt = `
		INSERT INTO clients (tenant_id, company_name, contact_name, email, phone, address, post_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + clientColumns

	return scanClient(q.QueryRowContext(ctx, stmt,
		tenantID,
		in.CompanyName,
		in.ContactName,
		in.Email,
		in.Phone,
		in.Address,
		in.PostCode,
	))
}

// Update writes only the fields present in p. An empty patch returns the current row.
func (r *ClientPostgres) Update(ctx context.Context, tenantID model.TenantID, id int64, p model.ClientPatch) (*model.Client, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cols := p.Columns()
	if len(cols) == 0 {
		return r.FindByID(ctx, tenantID, id)
	}

	stmt, args, err := psql.Update("clients").
		SetMap(cols).
		Where("tenant_id = ?", tenantID).
		Where("id = ?", id).
		Suffix("RETURNING " + clientColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanClient(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, errs.Storage(err)
	}
	return c, nil
}

// Delete removes the client if tenantID owns it. Missing and foreign rows both report false.
func (r *ClientPostgres) Delete(ctx context.Context, tenantID model.TenantID, id int64) (bool, error) {
	const stmt = `DELETE FROM clients WHERE tenant_id = $1 AND id = $2`
	return deleted(ctx, r.db, stmt, tenantID, id)
}

func (r *ClientPostgres) Count(ctx context.Context, tenantID model.TenantID) (int, error) {
	const stmt = `SELECT COUNT(*) FROM clients WHERE tenant_id = $1`

	var total int
	err := r.read(ctx, func() error {
		var err error
		total, err = count(ctx, r.db, stmt, tenantID)
		return err
	})
	if err != nil {
		return 0, errs.Storage(err)
	}
	return total, nil
}
