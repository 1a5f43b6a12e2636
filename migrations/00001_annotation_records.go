package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAnnotationRecords, downAnnotationRecords)
}

func upAnnotationRecords(ctx context.Context, tx *sql.Tx) error {
	createRecordsTable := `
	CREATE TABLE IF NOT EXISTS annotation_records (
		record_key TEXT PRIMARY KEY,
		payload JSONB NOT NULL DEFAULT '[]'::jsonb,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	if _, err := tx.ExecContext(ctx, createRecordsTable); err != nil {
		return fmt.Errorf("could not create annotation_records table: %w", err)
	}

	createPrefixIndex := `
	CREATE INDEX IF NOT EXISTS idx_annotation_records_key_prefix
		ON annotation_records (record_key text_pattern_ops);
	`
	if _, err := tx.ExecContext(ctx, createPrefixIndex); err != nil {
		return fmt.Errorf("could not create annotation_records index: %w", err)
	}
	return nil
}

func downAnnotationRecords(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS annotation_records;"); err != nil {
		return fmt.Errorf("could not drop table annotation_records: %w", err)
	}
	return nil
}
