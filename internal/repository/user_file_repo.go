package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"profilevault/internal/models"
)

// Store-level errors. Handlers map these to responses; the repository never
// talks HTTP.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrStoreCorrupt = errors.New("user store corrupt")
)

// UserFileRepository persists the full user collection as a JSON array in a
// single file. Reads and read-modify-write cycles are serialized by an
// in-process mutex; writes go through a temp file and rename so a failure
// mid-write never truncates the store.
type UserFileRepository struct {
	path string
	mu   sync.Mutex
}

func NewUserFileRepository(path string) *UserFileRepository {
	return &UserFileRepository{path: path}
}

var _ Users = (*UserFileRepository)(nil)

// LoadAll reads and parses the full collection.
func (r *UserFileRepository) LoadAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

// FindByID returns the record with the given id, or ErrUserNotFound.
func (r *UserFileRepository) FindByID(id int) (models.User, error) {
	users, err := r.LoadAll()
	if err != nil {
		return models.User{}, err
	}
	i := findIndex(users, id)
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}
	return users[i], nil
}

// UpdateProfile replaces the patchable fields of the record matching id and
// rewrites the store. The whole load-modify-persist cycle runs under the
// repository mutex. Returns ErrUserNotFound if no record matches.
func (r *UserFileRepository) UpdateProfile(id int, patch models.ProfilePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadLocked()
	if err != nil {
		return err
	}
	updated, found := applyPatch(users, id, patch)
	if !found {
		return ErrUserNotFound
	}
	return r.persistLocked(updated)
}

// Persist overwrites the entire backing store with the serialized collection.
func (r *UserFileRepository) Persist(users []models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persistLocked(users)
}

// Exists reports whether the backing file is present (used for seed bootstrap).
func (r *UserFileRepository) Exists() (bool, error) {
	_, err := os.Stat(r.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat user store %q: %w", r.path, err)
}

func (r *UserFileRepository) loadLocked() ([]models.User, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read user store %q: %w", r.path, err)
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	return users, nil
}

func (r *UserFileRepository) persistLocked(users []models.User) error {
	raw, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user store: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace user store %q: %w", r.path, err)
	}
	return nil
}

// findIndex returns the position of the record with the given id, or -1.
func findIndex(users []models.User, id int) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

// applyPatch returns a new collection with the matching record's profile
// fields replaced. The input collection is not modified. found is false when
// no record matches id.
func applyPatch(users []models.User, id int, patch models.ProfilePatch) (out []models.User, found bool) {
	out = make([]models.User, len(users))
	copy(out, users)
	i := findIndex(out, id)
	if i < 0 {
		return out, false
	}
	out[i].Name = patch.Name
	out[i].Email = patch.Email
	out[i].Bio = patch.Bio
	return out, true
}
