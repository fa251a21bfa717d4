// Package postgres persists security audit events to the edge_security_events
// table. Retention and downstream processing are owned by the security
// pipeline, not the edge.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"acont-edge/internal/audit"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Store implements audit.Store over PostgreSQL.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to databaseURL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// Migrate creates the events table when absent. The edge owns only this one
// table, so a full migration tool is not warranted.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS edge_security_events (
			id          UUID PRIMARY KEY,
			occurred_at TIMESTAMPTZ NOT NULL,
			action      TEXT NOT NULL,
			path        TEXT NOT NULL,
			locale      TEXT NOT NULL,
			role        TEXT NOT NULL DEFAULT '',
			subject     TEXT NOT NULL DEFAULT '',
			target      TEXT NOT NULL DEFAULT '',
			request_id  TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("migrate edge_security_events: %w", err)
	}
	return nil
}

// Append writes one event.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO edge_security_events
			(id, occurred_at, action, path, locale, role, subject, target, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.New(), event.Timestamp, string(event.Action), event.Path,
		event.Locale, event.Role, event.Subject, event.Target, event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("append security event: %w", err)
	}
	return nil
}

// ListByAction returns events for one action, newest first. Used by tests and
// operational tooling.
func (s *Store) ListByAction(ctx context.Context, action audit.Action) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT occurred_at, action, path, locale, role, subject, target, request_id
		FROM edge_security_events
		WHERE action = $1
		ORDER BY occurred_at DESC`, string(action))
	if err != nil {
		return nil, fmt.Errorf("list security events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var e audit.Event
		var a string
		if err := rows.Scan(&e.Timestamp, &a, &e.Path, &e.Locale, &e.Role, &e.Subject, &e.Target, &e.RequestID); err != nil {
			return nil, fmt.Errorf("scan security event: %w", err)
		}
		e.Action = audit.Action(a)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
