package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"profilevault/internal/models"
)

// AuditRepository stores activity events in SQLite.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository { return &AuditRepository{db: db} }

var _ Audit = (*AuditRepository)(nil)

const (
	insertEventSQL = `INSERT INTO audit_events (id, occurred_at, type, user_id, detail) VALUES (?, ?, ?, ?, ?)`

	selectEventsByUserSQL = `SELECT id, occurred_at, type, user_id, detail
FROM audit_events WHERE user_id = ? ORDER BY occurred_at DESC LIMIT ?`
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Append inserts a new event. Empty EventID and zero OccurredAt are filled in.
func (r *AuditRepository) Append(ctx context.Context, e models.AuditEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.Format(sqliteTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.UserID,
		e.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByUser returns the user's most recent events, newest first.
func (r *AuditRepository) ListByUser(ctx context.Context, userID, limit int) ([]models.AuditEvent, error) {
	rows, err := r.db.QueryContext(ctx, selectEventsByUserSQL, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("select audit events for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.AuditEvent, 0, limit)
	for rows.Next() {
		var (
			ev models.AuditEvent
			ts string
		)
		if err := rows.Scan(&ev.EventID, &ts, &ev.Type, &ev.UserID, &ev.Detail); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if t, perr := time.Parse(sqliteTimeLayout, ts); perr == nil {
			ev.OccurredAt = t.UTC()
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
