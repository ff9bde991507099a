// Package sqlite provides the SQLite-backed snapshot cache of the
// notification list.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	_ "modernc.org/sqlite"
)

var (
	// ErrEmptyPath indicates that no database path was given.
	ErrEmptyPath = errors.New("db path cannot be empty")
	// ErrSchemaTooNew indicates a database written by a newer binary.
	ErrSchemaTooNew = errors.New("schema version is newer than supported")
	// ErrClosed indicates use of a closed cache.
	ErrClosed = errors.New("cache is closed")
)

const timeLayout = time.RFC3339Nano

// Cache stores the full notification list and reloads it on start.
// Action effects cannot be persisted; restored actions keep label and intent.
type Cache struct {
	db   *sql.DB
	path string
}

// Open creates or opens the cache database at path and migrates it.
func Open(ctx context.Context, path string) (*Cache, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite cache: %w", ErrEmptyPath)
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite cache: create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite cache: open db: %w", err)
	}
	// One connection keeps :memory: databases and PRAGMAs consistent.
	db.SetMaxOpenConns(1)

	c := &Cache{db: db, path: path}
	if err := c.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init(ctx context.Context) error {
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := c.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("sqlite cache: %s: %w", pragma, err)
		}
	}
	return migrate(ctx, c.db)
}

// Path returns the database location.
func (c *Cache) Path() string {
	return c.path
}

// Close closes the underlying connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Save replaces the cached list with items in a single transaction.
func (c *Cache) Save(ctx context.Context, items []domain.Notification) error {
	if c == nil || c.db == nil {
		return fmt.Errorf("sqlite cache: save: %w", ErrClosed)
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite cache: begin save: %w", err)
	}
	if err := saveTx(ctx, tx, items); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite cache: commit save: %w", err)
	}
	return nil
}

func saveTx(ctx context.Context, tx *sql.Tx, items []domain.Notification) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("sqlite cache: clear notifications: %w", err)
	}

	insertNotification, err := tx.PrepareContext(ctx, `INSERT INTO notifications
		(id, seq, type, title, message, timestamp, priority, source, duration_ms, dismissible, read, dismissed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite cache: prepare notification insert: %w", err)
	}
	defer insertNotification.Close()

	insertAction, err := tx.PrepareContext(ctx, `INSERT INTO actions
		(notification_id, position, label, intent) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite cache: prepare action insert: %w", err)
	}
	defer insertAction.Close()

	insertAlert, err := tx.PrepareContext(ctx, `INSERT INTO alerts
		(notification_id, risk_level, location, affected_areas, expires_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite cache: prepare alert insert: %w", err)
	}
	defer insertAlert.Close()

	for _, n := range items {
		if _, err := insertNotification.ExecContext(ctx,
			n.ID,
			int64(n.Seq),
			string(n.Type),
			n.Title,
			n.Message,
			n.Timestamp.UTC().Format(timeLayout),
			string(n.Priority),
			n.Source,
			n.Duration.Milliseconds(),
			n.Dismissible,
			n.Read,
			n.Dismissed,
		); err != nil {
			return fmt.Errorf("sqlite cache: insert notification %s: %w", n.ID, err)
		}
		for i, a := range n.Actions {
			if _, err := insertAction.ExecContext(ctx, n.ID, i, a.Label, a.Intent); err != nil {
				return fmt.Errorf("sqlite cache: insert action %q of %s: %w", a.Label, n.ID, err)
			}
		}
		if n.Alert != nil {
			areas, err := json.Marshal(nonNil(n.Alert.AffectedAreas))
			if err != nil {
				return fmt.Errorf("sqlite cache: encode areas of %s: %w", n.ID, err)
			}
			expires := ""
			if !n.Alert.ExpiresAt.IsZero() {
				expires = n.Alert.ExpiresAt.UTC().Format(timeLayout)
			}
			if _, err := insertAlert.ExecContext(ctx, n.ID, n.Alert.RiskLevel, n.Alert.Location, string(areas), expires); err != nil {
				return fmt.Errorf("sqlite cache: insert alert of %s: %w", n.ID, err)
			}
		}
	}
	return nil
}

// Load returns the cached list ordered by sequence number.
func (c *Cache) Load(ctx context.Context) ([]domain.Notification, error) {
	if c == nil || c.db == nil {
		return nil, fmt.Errorf("sqlite cache: load: %w", ErrClosed)
	}

	rows, err := c.db.QueryContext(ctx, `SELECT
		n.id, n.seq, n.type, n.title, n.message, n.timestamp, n.priority, n.source,
		n.duration_ms, n.dismissible, n.read, n.dismissed,
		a.risk_level, a.location, a.affected_areas, a.expires_at
		FROM notifications n
		LEFT JOIN alerts a ON a.notification_id = n.id
		ORDER BY n.seq`)
	if err != nil {
		return nil, fmt.Errorf("sqlite cache: query notifications: %w", err)
	}
	defer rows.Close()

	var (
		items []domain.Notification
		index = map[string]int{}
	)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		index[n.ID] = len(items)
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite cache: iterate notifications: %w", err)
	}

	if err := c.loadActions(ctx, items, index); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Cache) loadActions(ctx context.Context, items []domain.Notification, index map[string]int) error {
	rows, err := c.db.QueryContext(ctx, `SELECT notification_id, label, intent FROM actions ORDER BY notification_id, position`)
	if err != nil {
		return fmt.Errorf("sqlite cache: query actions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var a domain.Action
		if err := rows.Scan(&id, &a.Label, &a.Intent); err != nil {
			return fmt.Errorf("sqlite cache: scan action: %w", err)
		}
		if i, ok := index[id]; ok {
			items[i].Actions = append(items[i].Actions, a)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite cache: iterate actions: %w", err)
	}
	return nil
}

func scanNotification(rows *sql.Rows) (domain.Notification, error) {
	var (
		n          domain.Notification
		seq        int64
		typ        string
		priority   string
		timestamp  string
		durationMs int64
		riskLevel  sql.NullFloat64
		location   sql.NullString
		areas      sql.NullString
		expiresAt  sql.NullString
	)
	if err := rows.Scan(
		&n.ID, &seq, &typ, &n.Title, &n.Message, &timestamp, &priority, &n.Source,
		&durationMs, &n.Dismissible, &n.Read, &n.Dismissed,
		&riskLevel, &location, &areas, &expiresAt,
	); err != nil {
		return n, fmt.Errorf("sqlite cache: scan notification: %w", err)
	}

	ts, err := time.Parse(timeLayout, timestamp)
	if err != nil {
		return n, fmt.Errorf("sqlite cache: notification %s: bad timestamp %q: %w", n.ID, timestamp, err)
	}
	n.Seq = uint64(seq)
	n.Type = domain.Type(typ)
	n.Priority = domain.Priority(priority)
	n.Timestamp = ts
	n.Duration = time.Duration(durationMs) * time.Millisecond

	if riskLevel.Valid {
		alert := &domain.AlertDetails{
			RiskLevel: riskLevel.Float64,
			Location:  location.String,
		}
		if areas.String != "" {
			if err := json.Unmarshal([]byte(areas.String), &alert.AffectedAreas); err != nil {
				return n, fmt.Errorf("sqlite cache: notification %s: bad areas: %w", n.ID, err)
			}
			if len(alert.AffectedAreas) == 0 {
				alert.AffectedAreas = nil
			}
		}
		if expiresAt.String != "" {
			exp, err := time.Parse(timeLayout, expiresAt.String)
			if err != nil {
				return n, fmt.Errorf("sqlite cache: notification %s: bad expiry %q: %w", n.ID, expiresAt.String, err)
			}
			alert.ExpiresAt = exp
		}
		n.Alert = alert
	}
	return n, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
