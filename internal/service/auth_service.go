package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"profilevault/internal/cryptox"
	"profilevault/internal/logger"
	"profilevault/internal/models"
	"profilevault/internal/repository"
)

// Domain errors for auth flows.
var (
	ErrLoginFailed      = errors.New("no user with that email")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// AuthService implements email-only login, session issuance and the
// per-request session check. There is no password verification; the email
// address is the whole credential.
type AuthService struct {
	users      repository.Users
	sessions   repository.Sessions
	codec      *cryptox.Codec
	signingKey []byte
	ttl        time.Duration
	log        *logger.Logger
}

func NewAuthService(users repository.Users, sessions repository.Sessions, codec *cryptox.Codec, signingKey []byte, ttl time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		codec:      codec,
		signingKey: signingKey,
		ttl:        ttl,
		log:        log,
	}
}

var _ Authorization = (*AuthService)(nil)

// sessionClaims wraps the opaque session id in a signed token so the client
// cannot mint or alter session cookies.
type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// Login looks the user up by exact, case-sensitive email match against the
// decrypted stored addresses. On a match it creates a server-side session and
// returns the signed cookie value. Records that fail to decrypt are skipped.
func (s *AuthService) Login(email string) (string, int, error) {
	users, err := s.users.LoadAll()
	if err != nil {
		return "", 0, fmt.Errorf("load users: %w", err)
	}

	for _, u := range users {
		stored, derr := s.codec.Decrypt(u.Email)
		if derr != nil {
			if s.log != nil {
				s.log.Warnw("skipping undecryptable email during login", "user_id", u.ID)
			}
			continue
		}
		if stored == email {
			token, oerr := s.openSession(u.ID)
			if oerr != nil {
				return "", 0, oerr
			}
			return token, u.ID, nil
		}
	}
	return "", 0, ErrLoginFailed
}

// Authenticate parses the signed cookie value and resolves the server-side
// session. Any failure (bad signature, expired token, unknown or expired
// session) reports ErrNotAuthenticated.
func (s *AuthService) Authenticate(token string) (models.Session, error) {
	sid, err := s.parseToken(token)
	if err != nil {
		return models.Session{}, ErrNotAuthenticated
	}
	sess, err := s.sessions.Get(sid)
	if err != nil {
		return models.Session{}, ErrNotAuthenticated
	}
	return sess, nil
}

// Logout destroys the server-side session. An unparseable token is not an
// error: the client ends up logged out either way.
func (s *AuthService) Logout(token string) error {
	sid, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(sid)
}

func (s *AuthService) openSession(userID int) (string, error) {
	now := time.Now()
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sess.ID,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", ErrNotAuthenticated
	}
	return claims.SessionID, nil
}
