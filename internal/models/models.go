package models

import "time"

// EncryptedField is a single value encrypted at rest. Both parts are
// hex-encoded; the IV is unique per encryption call.
type EncryptedField struct {
	IV   string `json:"iv"`
	Data string `json:"data"`
}

// User is one record of the persisted user collection. Email and bio are
// stored only in encrypted form; name is stored sanitized plaintext.
type User struct {
	ID    int            `json:"id"`
	Name  string         `json:"name"`
	Email EncryptedField `json:"email"`
	Bio   EncryptedField `json:"bio"`
}

// ProfilePatch carries the three profile fields a user may change, already
// sanitized and encrypted. Only these fields are patchable.
type ProfilePatch struct {
	Name  string
	Email EncryptedField
	Bio   EncryptedField
}

// Session is the server-side record of an authenticated browsing context.
// The client holds only the opaque ID, wrapped in a signed cookie.
type Session struct {
	ID        string
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Audit event types.
const (
	EventLogin          = "LOGIN"
	EventLoginFailed    = "LOGIN_FAILED"
	EventProfileUpdated = "PROFILE_UPDATED"
	EventLogout         = "LOGOUT"
)

// AuditEvent is a single entry of the append-only activity log.
type AuditEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Type       string    `json:"type"` // LOGIN | LOGIN_FAILED | PROFILE_UPDATED | LOGOUT
	UserID     int       `json:"user_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}
