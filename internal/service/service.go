package service

import (
	"context"
	"time"

	"profilevault/internal/cryptox"
	"profilevault/internal/logger"
	"profilevault/internal/models"
	"profilevault/internal/repository"
)

// Authorization covers the login/logout lifecycle and per-request session
// resolution. The token handed to the client is the opaque session id wrapped
// in a signed cookie value.
type Authorization interface {
	Login(email string) (token string, userID int, err error)
	Authenticate(token string) (models.Session, error)
	Logout(token string) error
}

// Profile exposes the dashboard view and the profile-update pipeline
// (validate, sanitize, encrypt, persist).
type Profile interface {
	View(userID int) (ProfileView, error)
	Update(userID int, input ProfileInput) error
}

// Audit records activity events and reads them back per user. Recording is
// best-effort: failures are logged, never surfaced to the request.
type Audit interface {
	Record(ctx context.Context, typ string, userID int, detail string)
	Recent(ctx context.Context, userID int) ([]models.AuditEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Profile
	Audit
}

// Config carries the service-level knobs resolved from configuration.
type Config struct {
	SessionSecret []byte
	SessionTTL    time.Duration
}

// NewService wires the repository layer and the encryption codec into
// concrete services.
func NewService(repos *repository.Repository, codec *cryptox.Codec, cfg Config, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Sessions, codec, cfg.SessionSecret, cfg.SessionTTL, log),
		Profile:       NewProfileService(repos.Users, codec),
		Audit:         NewAuditService(repos.Audit, log),
	}
}
