package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_tenants",
		SQL: `CREATE TABLE IF NOT EXISTS tenants (
  id           BIGSERIAL   PRIMARY KEY,
  company_name TEXT        NOT NULL,
  contact_name TEXT        NOT NULL DEFAULT '',
  is_active    BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_stages",
		SQL: `CREATE TABLE IF NOT EXISTS stages (
  id          BIGSERIAL PRIMARY KEY,
  name        TEXT      NOT NULL UNIQUE,
  description TEXT      NOT NULL DEFAULT '',
  sort_order  INTEGER   NOT NULL DEFAULT 0
);`,
	},
	{
		Name: "create_table_clients",
		SQL: `CREATE TABLE IF NOT EXISTS clients (
  id           BIGSERIAL   PRIMARY KEY,
  tenant_id    BIGINT      NOT NULL REFERENCES tenants (id),
  company_name TEXT        NOT NULL,
  contact_name TEXT        NOT NULL DEFAULT '',
  email        TEXT        NOT NULL DEFAULT '',
  phone        TEXT        NOT NULL DEFAULT '',
  address      TEXT        NOT NULL DEFAULT '',
  post_code    TEXT        NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_clients_tenant_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_clients_tenant_id ON clients (tenant_id, id);`,
	},
	{
		Name: "create_table_services",
		SQL: `CREATE TABLE IF NOT EXISTS services (
  id          BIGSERIAL     PRIMARY KEY,
  tenant_id   BIGINT        NOT NULL REFERENCES tenants (id),
  title       TEXT          NOT NULL,
  description TEXT          NOT NULL DEFAULT '',
  rate        NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (rate >= 0),
  code        TEXT          NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_services_tenant_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_services_tenant_id ON services (tenant_id, id);`,
	},
	{
		Name: "create_table_contracts",
		SQL: `CREATE TABLE IF NOT EXISTS contracts (
  id           BIGSERIAL   PRIMARY KEY,
  tenant_id    BIGINT      NOT NULL REFERENCES tenants (id),
  client_id    BIGINT      NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  title        TEXT        NOT NULL,
  status       TEXT        NOT NULL CHECK (status IN ('Active', 'Pending', 'Expired')),
  value        BIGINT      NOT NULL DEFAULT 0 CHECK (value BETWEEN 0 AND 1000000000),
  start_date   DATE,
  end_date     DATE,
  document_key TEXT        NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_contracts_tenant_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_contracts_tenant_id ON contracts (tenant_id, status);`,
	},
	{
		Name: "create_table_opportunities",
		SQL: `CREATE TABLE IF NOT EXISTS opportunities (
  id                BIGSERIAL   PRIMARY KEY,
  client_id         BIGINT      NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  title             TEXT        NOT NULL,
  description       TEXT        NOT NULL DEFAULT '',
  stage_id          BIGINT      NOT NULL REFERENCES stages (id),
  value             SMALLINT    NOT NULL DEFAULT 0 CHECK (value >= 0),
  owner_employee_id BIGINT,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_opportunities_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_opportunities_client_id ON opportunities (client_id);`,
	},
	{
		Name: "create_table_roles",
		SQL: `CREATE TABLE IF NOT EXISTS roles (
  id   BIGSERIAL PRIMARY KEY,
  code TEXT      NOT NULL UNIQUE,
  name TEXT      NOT NULL
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id         BIGSERIAL   PRIMARY KEY,
  tenant_id  BIGINT      NOT NULL REFERENCES tenants (id),
  role_id    BIGINT      REFERENCES roles (id),
  user_name  TEXT        NOT NULL,
  email      TEXT        NOT NULL DEFAULT '',
  is_active  BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_users_tenant_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_tenant_id ON users (tenant_id, role_id);`,
	},
	{
		Name: "create_table_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
  id                 BIGSERIAL   PRIMARY KEY,
  tenant_id          BIGINT      NOT NULL REFERENCES tenants (id),
  client_id          BIGINT      REFERENCES clients (id) ON DELETE SET NULL,
  opportunity_id     BIGINT      REFERENCES opportunities (id) ON DELETE SET NULL,
  title              TEXT        NOT NULL,
  description        TEXT        NOT NULL DEFAULT '',
  status             TEXT        NOT NULL DEFAULT 'Active' CHECK (status IN ('Active', 'Completed', 'On Hold')),
  start_date         DATE,
  end_date           DATE,
  project_manager_id BIGINT      REFERENCES users (id) ON DELETE SET NULL,
  address            TEXT        NOT NULL DEFAULT '',
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_projects_tenant_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_projects_tenant_id ON projects (tenant_id, status);`,
	},
	{
		Name: "create_table_interactions",
		SQL: `CREATE TABLE IF NOT EXISTS interactions (
  id               BIGSERIAL   PRIMARY KEY,
  tenant_id        BIGINT      NOT NULL REFERENCES tenants (id),
  client_id        BIGINT      NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  opportunity_id   BIGINT      REFERENCES opportunities (id) ON DELETE SET NULL,
  interaction_type TEXT        NOT NULL,
  notes            TEXT        NOT NULL DEFAULT '',
  next_steps       TEXT        NOT NULL DEFAULT '',
  interaction_date DATE        NOT NULL DEFAULT CURRENT_DATE,
  reminder_date    DATE,
  created_by       BIGINT      REFERENCES users (id) ON DELETE SET NULL,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_interactions_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_interactions_client_id ON interactions (client_id, interaction_date);`,
	},
	{
		Name: "create_index_interactions_opportunity_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_interactions_opportunity_id ON interactions (opportunity_id);`,
	},
	{
		Name: "seed_roles",
		SQL: `INSERT INTO roles (code, name) VALUES
  ('ADMIN', 'Administrator'),
  ('PM', 'Project Manager'),
  ('SALES', 'Sales')
ON CONFLICT (code) DO NOTHING;`,
	},
	{
		Name: "seed_stages",
		SQL: `INSERT INTO stages (name, description, sort_order) VALUES
  ('New', 'Lead captured', 1),
  ('Qualified', 'Need and budget confirmed', 2),
  ('Proposal', 'Proposal sent', 3),
  ('Won', 'Converted to contract', 4),
  ('Lost', 'Closed without contract', 5)
ON CONFLICT (name) DO NOTHING;`,
	},
}

// EnsureMigrated checks if the sentinel 'interactions' table, the last one
// created, exists and runs migrations if it doesn't. Every step is idempotent,
// so a schema from an older release is brought up to date.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.interactions') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("msg", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
