package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; the index+1 is the schema version
// recorded in PRAGMA user_version.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS notifications (
		id          TEXT PRIMARY KEY,
		seq         INTEGER NOT NULL,
		type        TEXT NOT NULL,
		title       TEXT NOT NULL,
		message     TEXT NOT NULL DEFAULT '',
		timestamp   TEXT NOT NULL,
		priority    TEXT NOT NULL,
		source      TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL DEFAULT 0,
		dismissible INTEGER NOT NULL DEFAULT 1,
		read        INTEGER NOT NULL DEFAULT 0,
		dismissed   INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_notifications_seq ON notifications(seq);
	CREATE TABLE IF NOT EXISTS actions (
		notification_id TEXT NOT NULL REFERENCES notifications(id) ON DELETE CASCADE,
		position        INTEGER NOT NULL,
		label           TEXT NOT NULL,
		intent          TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (notification_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS alerts (
		notification_id TEXT PRIMARY KEY REFERENCES notifications(id) ON DELETE CASCADE,
		risk_level      REAL NOT NULL,
		location        TEXT NOT NULL DEFAULT '',
		affected_areas  TEXT NOT NULL DEFAULT '[]',
		expires_at      TEXT NOT NULL DEFAULT ''
	);`,
}

// SchemaVersion is the version a fully migrated database reports.
func SchemaVersion() int {
	return len(migrations)
}

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("sqlite cache: read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("sqlite cache: %w: database at v%d, binary knows v%d", ErrSchemaTooNew, version, len(migrations))
	}
	for i := version; i < len(migrations); i++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("sqlite cache: begin migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite cache: apply migration %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite cache: record migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("sqlite cache: commit migration %d: %w", i+1, err)
		}
	}
	return nil
}
