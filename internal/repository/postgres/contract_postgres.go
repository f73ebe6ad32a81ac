package postgres

import (
	"context"
	"database/sql"
	"errors"

	"crmapi/internal/database"
	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const contractColumns = "id, tenant_id, client_id, title, status, value, start_date, end_date, document_key, created_at"

// ContractPostgres stores contracts. The referenced client is checked against
// the tenant inside the same transaction as the write.
type ContractPostgres struct {
	base
}

func NewContractPostgres(db *sql.DB, reads *database.ReadRetrier) *ContractPostgres {
	return &ContractPostgres{base{db: db, reads: reads}}
}

var _ repository.ContractRepository = (*ContractPostgres)(nil)

func scanContract(rs rowScanner) (*model.Contract, error) {
	var (
		c          model.Contract
		status     string
		start, end sql.NullTime
	)
	if err := rs.Scan(
		&c.ID,
		&c.TenantID,
		&c.ClientID,
		&c.Title,
		&status,
		&c.Value,
		&start,
		&end,
		&c.DocumentKey,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.Status = model.ContractStatus(status)
	c.StartDate = nullDate(start)
	c.EndDate = nullDate(end)
	return &c, nil
}

// List returns the tenant's contracts, optionally narrowed to one status.
func (r *ContractPostgres) List(ctx context.Context, tenantID model.TenantID, status model.ContractStatus, pq repository.PageQuery) (*repository.PageResult[model.Contract], error) {
	if status != "" && !status.Valid() {
		return nil, errs.Invalid("status")
	}

	countQ := psql.Select("COUNT(*)").From("contracts").Where("tenant_id = ?", tenantID)
	listQ := psql.Select(contractColumns).From("contracts").Where("tenant_id = ?", tenantID)
	if status != "" {
		countQ = countQ.Where("status = ?", string(status))
		listQ = listQ.Where("status = ?", string(status))
	}
	listQ = listQ.OrderBy("created_at DESC", "id DESC").
		Limit(uint64(pq.Limit)).
		Offset(uint64(pq.Offset))

	qCount, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, err
	}
	qList, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, err
	}

	var res *repository.PageResult[model.Contract]
	err = r.read(ctx, func() error {
		total, err := count(ctx, r.db, qCount, countArgs...)
		if err != nil {
			return err
		}

		rows, err := r.db.QueryContext(ctx, qList, listArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		items := make([]model.Contract, 0)
		for rows.Next() {
			c, err := scanContract(rows)
			if err != nil {
				return err
			}
			items = append(items, *c)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		res = &repository.PageResult[model.Contract]{Items: items, Total: total}
		return nil
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return res, nil
}

func (r *ContractPostgres) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Contract, error) {
	const stmt = `SELECT ` + contractColumns + ` FROM contracts WHERE tenant_id = $1 AND id = $2`

	var c *model.Contract
	err := r.read(ctx, func() error {
		var err error
		c, err = scanContract(r.db.QueryRowContext(ctx, stmt, tenantID, id))
		return err
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return c, nil
}

// Create inserts a contract after proving the client belongs to tenantID.
func (r *ContractPostgres) Create(ctx context.Context, tenantID model.TenantID, in model.ContractInput) (*model.Contract, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	const stmt = `
		INSERT INTO contracts (tenant_id, client_id, title, status, value, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contractColumns

	var out *model.Contract
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := ensureClientOwned(ctx, tx, tenantID, in.ClientID); err != nil {
			return err
		}
		c, err := scanContract(tx.QueryRowContext(ctx, stmt,
			tenantID,
			in.ClientID,
			in.Title,
			string(in.Status),
			in.Value,
			in.StartDate,
			in.EndDate,
		))
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return out, nil
}

// Update writes the present fields. Moving a contract to another client
// re-checks that client's ownership first.
func (r *ContractPostgres) Update(ctx context.Context, tenantID model.TenantID, id int64, p model.ContractPatch) (*model.Contract, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cols := p.Columns()
	if len(cols) == 0 {
		return r.FindByID(ctx, tenantID, id)
	}

	stmt, args, err := psql.Update("contracts").
		SetMap(cols).
		Where("tenant_id = ?", tenantID).
		Where("id = ?", id).
		Suffix("RETURNING " + contractColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	var out *model.Contract
	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if p.ClientID != nil {
			if _, err := ensureClientOwned(ctx, tx, tenantID, *p.ClientID); err != nil {
				return err
			}
		}
		c, err := scanContract(tx.QueryRowContext(ctx, stmt, args...))
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return out, nil
}

func (r *ContractPostgres) Delete(ctx context.Context, tenantID model.TenantID, id int64) (string, bool, error) {
	const stmt = `DELETE FROM contracts WHERE tenant_id = $1 AND id = $2 RETURNING document_key`

	var key string
	err := r.db.QueryRowContext(ctx, stmt, tenantID, id).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.Storage(err)
	}
	return key, true, nil
}

func (r *ContractPostgres) DocumentKeys(ctx context.Context, tenantID model.TenantID, clientID int64) ([]string, error) {
	const stmt = `
		SELECT document_key FROM contracts
		WHERE tenant_id = $1 AND client_id = $2 AND document_key <> ''
		ORDER BY id
	`

	var keys []string
	err := r.read(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, stmt, tenantID, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()

		keys = make([]string, 0)
		for rows.Next() {
			var k string
			if err := rows.Scan(&k); err != nil {
				return err
			}
			keys = append(keys, k)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return keys, nil
}

// CountByStatus groups the tenant's contracts by status. Statuses with no
// contracts are absent from the result.
func (r *ContractPostgres) CountByStatus(ctx context.Context, tenantID model.TenantID) ([]model.ContractStatusCount, error) {
	const stmt = `
		SELECT status, COUNT(*), COALESCE(SUM(value), 0)
		FROM contracts
		WHERE tenant_id = $1
		GROUP BY status
		ORDER BY status
	`

	var out []model.ContractStatusCount
	err := r.read(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, stmt, tenantID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]model.ContractStatusCount, 0)
		for rows.Next() {
			var (
				sc     model.ContractStatusCount
				status string
			)
			if err := rows.Scan(&status, &sc.Count, &sc.Value); err != nil {
				return err
			}
			sc.Status = model.ContractStatus(status)
			out = append(out, sc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return out, nil
}
