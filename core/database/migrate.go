package database

import (
	"context"
	"fmt"
	"strings"

	"agenda-api/core/errors"
	"agenda-api/core/logger"
)

// Migration is one ordered schema change. Additive migrations use guarded
// DDL and may run any number of times; destructive ones are recorded in
// schema_migrations and refuse to run against a database whose state no
// longer matches what they expect.
type Migration struct {
	Name        string
	Destructive bool
	Statements  []string
	// Precondition must hold before a destructive migration runs for the
	// first time. Column name in "table.column" form that must still exist.
	RequiresColumn string
}

// Migrations in the order they must be applied.
var Migrations = []Migration{
	{
		Name:       "base_schema",
		Statements: splitStatements(baseSchema),
	},
	{
		Name:       "enhanced_workflow",
		Statements: splitStatements(enhancedWorkflow),
	},
	{
		Name:           "time_column_split",
		Destructive:    true,
		Statements:     timeColumnSplit,
		RequiresColumn: "", // guarded by recorded state only; ALTERs are typed USING casts
	},
	{
		Name:           "collaborator_redesign",
		Destructive:    true,
		Statements:     collaboratorRedesign,
		RequiresColumn: "users.collaborator",
	},
}

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name VARCHAR(100) PRIMARY KEY,
	destructive BOOLEAN NOT NULL DEFAULT FALSE,
	applied_at TIMESTAMP DEFAULT NOW()
)`

// migrationAction is the runner's decision for one migration.
type migrationAction int

const (
	actionRun migrationAction = iota
	actionSkip
	actionConflict
)

// decideAction implements the migration policy: recorded migrations are
// skipped, additive ones always run, and an unrecorded destructive
// migration runs only while its expected pre-state is still present.
func decideAction(recorded, destructive, preStateOK bool) migrationAction {
	if recorded {
		return actionSkip
	}
	if destructive && !preStateOK {
		return actionConflict
	}
	return actionRun
}

// Migrate applies all pending migrations in order, each inside its own
// transaction. A destructive migration attempted against mismatched state
// is fatal, not skipped.
func (d *Database) Migrate(ctx context.Context) error {
	if err := d.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range Migrations {
		recorded, err := d.migrationRecorded(ctx, m.Name)
		if err != nil {
			return err
		}

		preStateOK := true
		if m.Destructive && !recorded && m.RequiresColumn != "" {
			preStateOK, err = d.columnExists(ctx, m.RequiresColumn)
			if err != nil {
				return err
			}
		}

		switch decideAction(recorded, m.Destructive, preStateOK) {
		case actionSkip:
			logger.Debug("Database:Migrate:Skip", "migration", m.Name)
			continue
		case actionConflict:
			logger.Error("Database:Migrate:Conflict", "migration", m.Name, "requires", m.RequiresColumn)
			return errors.NewAppError(errors.ErrMigrationConflict,
				fmt.Sprintf("destructive migration %q cannot re-run: expected state %q not found", m.Name, m.RequiresColumn), nil)
		}

		if err := d.applyMigration(ctx, m); err != nil {
			return err
		}
		logger.Info("Database:Migrate:Applied", "migration", m.Name, "destructive", m.Destructive)
	}

	return nil
}

func (d *Database) applyMigration(ctx context.Context, m Migration) error {
	tx, err := d.BeginTxx(ctx)
	if err != nil {
		return fmt.Errorf("migration %s: begin: %w", m.Name, err)
	}
	defer tx.Rollback()

	for _, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			logger.Error("Database:Migrate:Statement", "migration", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (name, destructive) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		m.Name, m.Destructive); err != nil {
		return fmt.Errorf("migration %s: record: %w", m.Name, err)
	}

	return tx.Commit()
}

func (d *Database) migrationRecorded(ctx context.Context, name string) (bool, error) {
	var recorded bool
	err := d.GetContext(ctx, &recorded,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", name, err)
	}
	return recorded, nil
}

func (d *Database) columnExists(ctx context.Context, ref string) (bool, error) {
	table, column, ok := strings.Cut(ref, ".")
	if !ok {
		return false, fmt.Errorf("invalid column reference %q", ref)
	}

	var exists bool
	err := d.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT FROM information_schema.columns
			WHERE table_schema = 'public'
			AND table_name = $1
			AND column_name = $2
		)`, table, column)
	if err != nil {
		return false, fmt.Errorf("failed to check column %s: %w", ref, err)
	}
	return exists, nil
}

// splitStatements breaks a multi-statement DDL block on semicolons at the
// end of a line. Good enough for our own schema text, which never embeds
// semicolons in literals.
func splitStatements(block string) []string {
	var out []string
	for _, stmt := range strings.Split(block, ";\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || stmt == ";" {
			continue
		}
		out = append(out, strings.TrimSuffix(stmt, ";"))
	}
	return out
}
