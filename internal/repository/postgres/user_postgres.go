package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/database"
	"crmapi/internal/errs"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const userSelect = `u.id, u.tenant_id, u.role_id, u.user_name, u.email, u.is_active, u.created_at,
	COALESCE(r.name, ''), COALESCE(r.code, '')`

// UserPostgres reads staff accounts joined to the shared role table.
type UserPostgres struct {
	base
}

func NewUserPostgres(db *sql.DB, reads *database.ReadRetrier) *UserPostgres {
	return &UserPostgres{base{db: db, reads: reads}}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

func scanUser(rs rowScanner) (*model.User, error) {
	var (
		u    model.User
		role sql.NullInt64
	)
	if err := rs.Scan(
		&u.ID,
		&u.TenantID,
		&role,
		&u.UserName,
		&u.Email,
		&u.IsActive,
		&u.CreatedAt,
		&u.RoleName,
		&u.RoleCode,
	); err != nil {
		return nil, err
	}
	u.RoleID = nullInt64(role)
	return &u, nil
}

func (r *UserPostgres) List(ctx context.Context, tenantID model.TenantID, includeInactive bool) ([]model.User, error) {
	b := psql.Select(userSelect).
		From("users u").
		LeftJoin("roles r ON r.id = u.role_id").
		Where("u.tenant_id = ?", tenantID).
		OrderBy("u.user_name", "u.id")
	if !includeInactive {
		b = b.Where("u.is_active = TRUE")
	}
	stmt, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, stmt, args...)
}

func (r *UserPostgres) FindByID(ctx context.Context, tenantID model.TenantID, id int64) (*model.User, error) {
	const stmt = `
		SELECT ` + userSelect + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.tenant_id = $1 AND u.id = $2
	`

	var u *model.User
	err := r.read(ctx, func() error {
		var err error
		u, err = scanUser(r.db.QueryRowContext(ctx, stmt, tenantID, id))
		return err
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return u, nil
}

func (r *UserPostgres) ListByRole(ctx context.Context, tenantID model.TenantID, roleID int64) ([]model.User, error) {
	const stmt = `
		SELECT ` + userSelect + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.tenant_id = $1 AND u.role_id = $2 AND u.is_active = TRUE
		ORDER BY u.user_name, u.id
	`
	return r.query(ctx, stmt, tenantID, roleID)
}

func (r *UserPostgres) query(ctx context.Context, stmt string, args ...any) ([]model.User, error) {
	var out []model.User
	err := r.read(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]model.User, 0)
		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return err
			}
			out = append(out, *u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errs.Storage(err)
	}
	return out, nil
}
