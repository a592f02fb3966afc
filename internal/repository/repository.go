package repository

import (
	"context"
	"database/sql"

	"profilevault/internal/models"
)

// Users provides whole-collection access to the persisted user records.
// The backing store is a single JSON file; every write replaces the file.
type Users interface {
	LoadAll() ([]models.User, error)
	FindByID(id int) (models.User, error)
	UpdateProfile(id int, patch models.ProfilePatch) error
	Persist(users []models.User) error
}

// Sessions holds the server-side session records, keyed by opaque id.
type Sessions interface {
	Create(s models.Session) error
	Get(id string) (models.Session, error)
	Delete(id string) error
}

// Audit is the append-only activity log.
type Audit interface {
	Append(ctx context.Context, e models.AuditEvent) error
	ListByUser(ctx context.Context, userID, limit int) ([]models.AuditEvent, error)
}

type Repository struct {
	Users    Users
	Sessions Sessions
	Audit    Audit
}

func NewRepository(usersPath string, db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserFileRepository(usersPath),
		Sessions: NewSessionMemoryRepository(),
		Audit:    NewAuditRepository(db),
	}
}
