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
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id                     UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  username               TEXT        NOT NULL UNIQUE,
  email                  TEXT        NOT NULL UNIQUE,
  password_hash          TEXT        NOT NULL,
  reset_token            TEXT,
  reset_token_expires_at TIMESTAMPTZ,
  created_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_printers",
		SQL: `CREATE TABLE IF NOT EXISTS printers (
  id                     UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name                   TEXT        NOT NULL,
  email                  TEXT        NOT NULL UNIQUE,
  password_hash          TEXT        NOT NULL,
  address                TEXT        NOT NULL DEFAULT '',
  postal_code            TEXT        NOT NULL DEFAULT '',
  lat                    DOUBLE PRECISION,
  lng                    DOUBLE PRECISION,
  reset_token            TEXT,
  reset_token_expires_at TIMESTAMPTZ,
  created_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  owner_id     UUID        NOT NULL,
  target_id    UUID        NOT NULL,
  file_name    TEXT        NOT NULL,
  external_url TEXT,
  blob_id      TEXT,
  content_type TEXT        NOT NULL DEFAULT 'application/octet-stream',
  size         BIGINT      NOT NULL DEFAULT 0 CHECK (size >= 0),
  status       TEXT        NOT NULL DEFAULT 'Sent',
  uploaded_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (external_url IS NOT NULL OR blob_id IS NOT NULL)
);`,
	},
	{
		Name: "create_table_sent_documents",
		SQL: `CREATE TABLE IF NOT EXISTS sent_documents (
  user_id     UUID      NOT NULL,
  document_id UUID      NOT NULL,
  seq         BIGSERIAL NOT NULL,
  PRIMARY KEY (user_id, document_id)
);`,
	},
	{
		Name: "create_table_received_documents",
		SQL: `CREATE TABLE IF NOT EXISTS received_documents (
  printer_id  UUID      NOT NULL,
  document_id UUID      NOT NULL,
  seq         BIGSERIAL NOT NULL,
  PRIMARY KEY (printer_id, document_id)
);`,
	},
	{
		Name: "create_index_documents_owner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_owner_id ON documents (owner_id);`,
	},
	{
		Name: "create_index_documents_target_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_target_id ON documents (target_id);`,
	},
	{
		Name: "create_index_documents_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_status ON documents (status);`,
	},
	{
		Name: "create_index_printers_postal_code",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_printers_postal_code ON printers (postal_code);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()

	log.Info("db_migration_check", zap.String("component", "database"))

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("component", "database"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("component", "database"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("component", "database"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("component", "database"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("component", "database"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
