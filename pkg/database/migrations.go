package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Migration is one forward-only schema step.
type Migration struct {
	Version string
	SQL     string
}

const migration001Up = `
CREATE TABLE IF NOT EXISTS students (
    id INTEGER PRIMARY KEY,
    first_name VARCHAR(100) NOT NULL DEFAULT '',
    last_name VARCHAR(100) NOT NULL DEFAULT '',
    username VARCHAR(100) NOT NULL DEFAULT '',
    email VARCHAR(255) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS modules (
    code VARCHAR(10) PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    mnc BOOLEAN NOT NULL DEFAULT FALSE
);
`

const migration002Up = `
CREATE TABLE IF NOT EXISTS registrations (
    id SERIAL PRIMARY KEY,
    student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    module_code VARCHAR(10) NOT NULL REFERENCES modules(code) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_registrations_student_module ON registrations(student_id, module_code);

CREATE TABLE IF NOT EXISTS grades (
    id SERIAL PRIMARY KEY,
    score INTEGER NOT NULL,
    academic_year TEXT,
    student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    module_code VARCHAR(10) NOT NULL REFERENCES modules(code) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_grades_student_id ON grades(student_id);
CREATE INDEX IF NOT EXISTS idx_grades_module_code ON grades(module_code);
`

// academic_year is free-form text; databases created with the bounded column are widened.
const migration003Up = `
ALTER TABLE grades ALTER COLUMN academic_year TYPE TEXT;
`

// Migrations lists the schema in apply order.
var Migrations = []Migration{
	{Version: "001_catalog", SQL: migration001Up},
	{Version: "002_records", SQL: migration002Up},
	{Version: "003_academic_year_text", SQL: migration003Up},
}

const createMigrationTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(64) PRIMARY KEY,
    applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
)`

// Migrate applies every pending migration, each inside its own transaction.
func Migrate(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := db.ExecContext(ctx, createMigrationTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range Migrations {
		var applied bool
		if err := db.GetContext(ctx, &applied, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version); err != nil {
			return fmt.Errorf("check migration %s: %w", m.Version, err)
		}
		if applied {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return err
		}
		logger.Info("migration applied", zap.String("version", m.Version))
	}
	return nil
}

func apply(ctx context.Context, db *sqlx.DB, m Migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", m.Version, err)
	}
	return nil
}
