package service

import (
	"context"

	"profilevault/internal/logger"
	"profilevault/internal/models"
	"profilevault/internal/repository"
)

// recentEventLimit caps the activity list shown on the dashboard.
const recentEventLimit = 10

// AuditService records activity events. A failed write must never fail the
// request that triggered it, so errors are logged and dropped.
type AuditService struct {
	events repository.Audit
	log    *logger.Logger
}

func NewAuditService(events repository.Audit, log *logger.Logger) *AuditService {
	return &AuditService{events: events, log: log}
}

var _ Audit = (*AuditService)(nil)

// Record appends one event, best-effort.
func (s *AuditService) Record(ctx context.Context, typ string, userID int, detail string) {
	e := models.AuditEvent{Type: typ, UserID: userID, Detail: detail}
	if err := s.events.Append(ctx, e); err != nil && s.log != nil {
		s.log.Warnw("audit append failed", "type", typ, "user_id", userID, "err", err)
	}
}

// Recent returns the user's latest events, newest first.
func (s *AuditService) Recent(ctx context.Context, userID int) ([]models.AuditEvent, error) {
	return s.events.ListByUser(ctx, userID, recentEventLimit)
}
