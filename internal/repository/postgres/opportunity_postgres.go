package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"crmapi/internal/database"
	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const (
	opportunitySelect = "o.id, o.client_id, o.title, o.description, o.stage_id, o.value, o.owner_employee_id, o.created_at, c.company_name, s.name"

	// opportunityReturning mirrors opportunitySelect for INSERT/UPDATE ... RETURNING.
	opportunityReturning = `id, client_id, title, description, stage_id, value, owner_employee_id, created_at,
		(SELECT company_name FROM clients WHERE clients.id = opportunities.client_id),
		(SELECT name FROM stages WHERE stages.id = opportunities.stage_id)`

	// ownedByTenant limits opportunities to those whose client belongs to the tenant.
	ownedByTenant = "client_id IN (SELECT id FROM clients WHERE tenant_id = ?)"
)

// OpportunityPostgres stores leads. Leads have no tenant column: every read
// joins the parent client and every write proves the client's tenant.
type OpportunityPostgres struct {
	base
}

func NewOpportunityPostgres(db *sql.DB, reads *database.ReadRetrier) *OpportunityPostgres {
	return &OpportunityPostgres{base{db: db, reads: reads}}
}

var _ repository.OpportunityRepository = (*OpportunityPostgres)(nil)

func scanOpportunity(rs rowScanner) (*model.Opportunity, error) {
	var (
		o     model.Opportunity
		owner sql.NullInt64
	)
	if err := rs.Scan(
		&o.ID,
		&o.ClientID,
		&o.Title,
		&o.Description,
		&o.StageID,
		&o.Value,
		&owner,
		&o.CreatedAt,
		&o.ClientCompanyName,
		&o.StageName,
	); err != nil {
		return nil, err
	}
	o.OwnerEmployeeID = nullInt64(owner)
	return &o, nil
}

func leadsFrom(b sq.SelectBuilder, tenantID model.TenantID, f model.LeadFilter) sq.SelectBuilder {
	b = b.From("opportunities o").
		Join("clients c ON c.id = o.client_id").
		Where("c.tenant_id = ?", tenantID)
	if f.StageID > 0 {
		b = b.Where("o.stage_id = ?", f.StageID)
	}
	if f.ClientID > 0 {
		b = b.Where("o.client_id = ?", f.ClientID)
	}
	if f.OwnerEmployeeID > 0 {
		b = b.Where("o.owner_employee_id = ?", f.OwnerEmployeeID)
	}
	return b
}

// List returns the tenant's leads matching f, newest first.
func (r *OpportunityPostgres) List(ctx context.Context, tenantID model.TenantID, f model.LeadFilter, pq repository.PageQuery) (*repository.PageResult[model.Opportunity], error) {
	qCount, countArgs, err := leadsFrom(psql.Select("COUNT(*)"), tenantID, f).ToSql()
	if err != nil {
		return nil, err
	}
	qList, listArgs, err := leadsFrom(psql.Select(opportunitySelect), tenantID, f).
		Join("stages s ON s.id = o.stage_id").
		OrderBy("o.created_at DESC", "o.id DESC").
		Limit(uint64(pq.Limit)).
		Offset(uint64(pq.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var res *repository.PageResult[model.Opportunity]
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

		items := make([]model.Opportunity, 0)
		for rows.Next() {
			o, err := scanOpportunity(rows)
			if err != nil {
				return err
			}
			items = append(items, *o)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		res = &repository.PageResult[model.Opportunity]{Items: items, Total: total}
		return nil
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return res, nil
}

func (r *OpportunityPostgres) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Opportunity, error) {
	const stmt = `
		SELECT ` + opportunitySelect + `
		FROM opportunities o
		JOIN clients c ON c.id = o.client_id
		JOIN stages s ON s.id = o.stage_id
		WHERE c.tenant_id = $1 AND o.id = $2
	`

	var o *model.Opportunity
	err := r.read(ctx, func() error {
		var err error
		o, err = scanOpportunity(r.db.QueryRowContext(ctx, stmt, tenantID, id))
		return err
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return o, nil
}

// Create inserts a lead for an existing client. A client that is missing or
// owned by another tenant fails with ErrForeignOwnershipViolation and nothing
// is written.
func (r *OpportunityPostgres) Create(ctx context.Context, tenantID model.TenantID, in model.OpportunityInput) (*model.Opportunity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var out *model.Opportunity
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := ensureClientOwned(ctx, tx, tenantID, in.ClientID); err != nil {
			return err
		}
		o, err := insertOpportunity(ctx, tx, in.ClientID, in)
		if err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return out, nil
}

// CreateWithClient inserts the client first and then the lead referencing it.
// Either both rows commit or neither does.
func (r *OpportunityPostgres) CreateWithClient(ctx context.Context, tenantID model.TenantID, c model.ClientInput, in model.OpportunityInput) (*model.ClientWithLead, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := in.ValidateForNewClient(); err != nil {
		return nil, err
	}

	var out *model.ClientWithLead
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		client, err := insertClient(ctx, tx, tenantID, c)
		if err != nil {
			return fmt.Errorf("insert client: %w", err)
		}
		o, err := insertOpportunity(ctx, tx, client.ID, in)
		if err != nil {
			return fmt.Errorf("insert opportunity: %w", err)
		}
		out = &model.ClientWithLead{Client: *client, Opportunity: *o}
		return nil
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return out, nil
}

func insertOpportunity(ctx context.Context, q querier, clientID int64, in model.OpportunityInput) (*model.Opportunity, error) {
	const stmt = `
		INSERT INTO opportunities (client_id, title, description, stage_id, value, owner_employee_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + opportunityReturning

	return scanOpportunity(q.QueryRowContext(ctx, stmt,
		clientID,
		in.Title,
		in.Description,
		in.StageID,
		in.Value,
		in.OwnerEmployeeID,
	))
}

// Update writes the present fields of a lead the tenant owns through its client.
func (r *OpportunityPostgres) Update(ctx context.Context, tenantID model.TenantID, id int64, p model.OpportunityPatch) (*model.Opportunity, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cols := p.Columns()
	if len(cols) == 0 {
		return r.FindByID(ctx, tenantID, id)
	}

	stmt, args, err := psql.Update("opportunities").
		SetMap(cols).
		Where("id = ?", id).
		Where(ownedByTenant, tenantID).
		Suffix("RETURNING " + opportunityReturning).
		ToSql()
	if err != nil {
		return nil, err
	}

	o, err := scanOpportunity(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, errs.Storage(err)
	}
	return o, nil
}

func (r *OpportunityPostgres) Delete(ctx context.Context, tenantID model.TenantID, id int64) (bool, error) {
	const stmt = `DELETE FROM opportunities WHERE id = $1 AND client_id IN (SELECT id FROM clients WHERE tenant_id = $2)`
	return deleted(ctx, r.db, stmt, id, tenantID)
}

// CountByStage groups the tenant's leads by pipeline stage in stage order.
func (r *OpportunityPostgres) CountByStage(ctx context.Context, tenantID model.TenantID) ([]model.StageCount, error) {
	const stmt = `
		SELECT s.id, s.name, COUNT(o.id), COALESCE(SUM(o.value), 0)
		FROM opportunities o
		JOIN clients c ON c.id = o.client_id
		JOIN stages s ON s.id = o.stage_id
		WHERE c.tenant_id = $1
		GROUP BY s.id, s.name, s.sort_order
		ORDER BY s.sort_order, s.id
	`

	var out []model.StageCount
	err := r.read(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, stmt, tenantID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]model.StageCount, 0)
		for rows.Next() {
			var sc model.StageCount
			if err := rows.Scan(&sc.StageID, &sc.StageName, &sc.Count, &sc.Value); err != nil {
				return err
			}
			out = append(out, sc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return out, nil
}
