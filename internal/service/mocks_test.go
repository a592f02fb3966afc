package service

import (
	"profilevault/internal/models"
	"profilevault/internal/repository"
)

// ---- Repository fakes ----

type fakeUsers struct {
	users     []models.User
	loadErr   error
	updateErr error

	loadCalls    int
	lastPatchID  int
	lastPatch    models.ProfilePatch
	patchApplied bool
}

func (f *fakeUsers) LoadAll() ([]models.User, error) {
	f.loadCalls++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.users, nil
}

func (f *fakeUsers) FindByID(id int) (models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUsers) UpdateProfile(id int, patch models.ProfilePatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.lastPatchID = id
	f.lastPatch = patch
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Name = patch.Name
			f.users[i].Email = patch.Email
			f.users[i].Bio = patch.Bio
			f.patchApplied = true
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUsers) Persist(users []models.User) error {
	f.users = users
	return nil
}

var _ repository.Users = (*fakeUsers)(nil)

type fakeSessions struct {
	created   []models.Session
	deleted   []string
	createErr error
}

func (f *fakeSessions) Create(s models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSessions) Get(id string) (models.Session, error) {
	for _, s := range f.created {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Session{}, repository.ErrSessionNotFound
}

func (f *fakeSessions) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

var _ repository.Sessions = (*fakeSessions)(nil)
