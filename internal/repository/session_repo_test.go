package repository

import (
	"errors"
	"testing"
	"time"

	"profilevault/internal/models"
)

func TestSessionMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewSessionMemoryRepository()
	now := time.Now()

	s := models.Session{ID: "sid-1", UserID: 7, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Create(s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get("sid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != 7 {
		t.Errorf("got %+v", got)
	}

	if _, err := repo.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionMemoryRepository_RejectsEmptyID(t *testing.T) {
	repo := NewSessionMemoryRepository()
	if err := repo.Create(models.Session{UserID: 1}); err == nil {
		t.Errorf("expected error for empty session id")
	}
}

func TestSessionMemoryRepository_ExpiryRemovesOnAccess(t *testing.T) {
	repo := NewSessionMemoryRepository()
	now := time.Now()
	repo.now = func() time.Time { return now }

	s := models.Session{ID: "sid-1", UserID: 7, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Create(s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.Get("sid-1"); err != nil {
		t.Fatalf("live session rejected: %v", err)
	}

	repo.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := repo.Get("sid-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session to be not found, got %v", err)
	}

	// Expired record is gone even when the clock moves back.
	repo.now = func() time.Time { return now }
	if _, err := repo.Get("sid-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session should have been deleted, got %v", err)
	}
}

func TestSessionMemoryRepository_Delete(t *testing.T) {
	repo := NewSessionMemoryRepository()
	now := time.Now()
	_ = repo.Create(models.Session{ID: "sid-1", UserID: 7, ExpiresAt: now.Add(time.Hour)})

	if err := repo.Delete("sid-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get("sid-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session still present after delete")
	}

	// Unknown id is not an error.
	if err := repo.Delete("missing"); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}
