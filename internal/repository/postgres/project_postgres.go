package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"crmapi/internal/database"
	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const projectSelect = `p.id, p.tenant_id, p.client_id, p.opportunity_id, p.title, p.description, p.status,
	p.start_date, p.end_date, p.project_manager_id, p.address, p.created_at, COALESCE(u.user_name, '')`

// managerJoin only resolves managers of the project's own tenant.
const managerJoin = "users u ON u.id = p.project_manager_id AND u.tenant_id = p.tenant_id"

// ProjectPostgres reads projects, which carry their own tenant column.
type ProjectPostgres struct {
	base
}

func NewProjectPostgres(db *sql.DB, reads *database.ReadRetrier) *ProjectPostgres {
	return &ProjectPostgres{base{db: db, reads: reads}}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

func scanProject(rs rowScanner) (*model.Project, error) {
	var (
		p                     model.Project
		status                string
		client, lead, manager sql.NullInt64
		start, end            sql.NullTime
	)
	if err := rs.Scan(
		&p.ID,
		&p.TenantID,
		&client,
		&lead,
		&p.Title,
		&p.Description,
		&status,
		&start,
		&end,
		&manager,
		&p.Address,
		&p.CreatedAt,
		&p.ProjectManagerName,
	); err != nil {
		return nil, err
	}
	p.Status = model.ProjectStatus(status)
	p.ClientID = nullInt64(client)
	p.OpportunityID = nullInt64(lead)
	p.ProjectManagerID = nullInt64(manager)
	p.StartDate = nullDate(start)
	p.EndDate = nullDate(end)
	return &p, nil
}

func projectsFrom(b sq.SelectBuilder, tenantID model.TenantID, f model.ProjectFilter) sq.SelectBuilder {
	b = b.From("projects p").Where("p.tenant_id = ?", tenantID)
	if f.Status != "" {
		b = b.Where("p.status = ?", string(f.Status))
	}
	if f.ProjectManagerID > 0 {
		b = b.Where("p.project_manager_id = ?", f.ProjectManagerID)
	}
	return b
}

// List returns the tenant's projects matching f, newest first.
func (r *ProjectPostgres) List(ctx context.Context, tenantID model.TenantID, f model.ProjectFilter, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	qCount, countArgs, err := projectsFrom(psql.Select("COUNT(*)"), tenantID, f).ToSql()
	if err != nil {
		return nil, err
	}
	qList, listArgs, err := projectsFrom(psql.Select(projectSelect), tenantID, f).
		LeftJoin(managerJoin).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(pq.Limit)).
		Offset(uint64(pq.Offset)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var res *repository.PageResult[model.Project]
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

		items := make([]model.Project, 0)
		for rows.Next() {
			p, err := scanProject(rows)
			if err != nil {
				return err
			}
			items = append(items, *p)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		res = &repository.PageResult[model.Project]{Items: items, Total: total}
		return nil
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return res, nil
}

func (r *ProjectPostgres) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.Project, error) {
	const stmt = `
		SELECT ` + projectSelect + `
		FROM projects p
		LEFT JOIN ` + managerJoin + `
		WHERE p.tenant_id = $1 AND p.id = $2
	`

	var p *model.Project
	err := r.read(ctx, func() error {
		var err error
		p, err = scanProject(r.db.QueryRowContext(ctx, stmt, tenantID, id))
		return err
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return p, nil
}

// CountByStatus groups the tenant's projects by status. Statuses with no
// projects are absent from the result.
func (r *ProjectPostgres) CountByStatus(ctx context.Context, tenantID model.TenantID) ([]model.ProjectStatusCount, error) {
	const stmt = `
		SELECT status, COUNT(*)
		FROM projects
		WHERE tenant_id = $1
		GROUP BY status
		ORDER BY status
	`

	var out []model.ProjectStatusCount
	err := r.read(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, stmt, tenantID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]model.ProjectStatusCount, 0)
		for rows.Next() {
			var (
				sc     model.ProjectStatusCount
				status string
			)
			if err := rows.Scan(&status, &sc.Count); err != nil {
				return err
			}
			sc.Status = model.ProjectStatus(status)
			out = append(out, sc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return out, nil
}
