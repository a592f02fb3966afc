package service

import (
	"fmt"
	"html"

	"github.com/go-playground/validator/v10"

	"profilevault/internal/cryptox"
	"profilevault/internal/models"
	"profilevault/internal/repository"
)

// ProfileInput is the raw form input of a profile update.
type ProfileInput struct {
	Name  string
	Email string
	Bio   string
}

// ProfileView is what the dashboard renders: the stored record with email
// and bio decrypted.
type ProfileView struct {
	ID    int
	Name  string
	Email string
	Bio   string
}

// ProfileService owns the profile-update pipeline and the decrypted
// dashboard view.
type ProfileService struct {
	users    repository.Users
	codec    *cryptox.Codec
	validate *validator.Validate
}

func NewProfileService(users repository.Users, codec *cryptox.Codec) *ProfileService {
	return &ProfileService{
		users:    users,
		codec:    codec,
		validate: validator.New(),
	}
}

var _ Profile = (*ProfileService)(nil)

// View loads the user's record and decrypts email and bio for display.
func (s *ProfileService) View(userID int) (ProfileView, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return ProfileView{}, err
	}
	email, err := s.codec.Decrypt(u.Email)
	if err != nil {
		return ProfileView{}, fmt.Errorf("decrypt email for user %d: %w", userID, err)
	}
	bio, err := s.codec.Decrypt(u.Bio)
	if err != nil {
		return ProfileView{}, fmt.Errorf("decrypt bio for user %d: %w", userID, err)
	}
	return ProfileView{ID: u.ID, Name: u.Name, Email: email, Bio: bio}, nil
}

// Update runs the pipeline: validate the raw input, escape name and bio for
// HTML embedding, encrypt email and the escaped bio, then persist via a
// single read-modify-write cycle. Validation failures return
// *ValidationError and leave the store untouched; an unknown userID returns
// repository.ErrUserNotFound.
func (s *ProfileService) Update(userID int, in ProfileInput) error {
	if err := validateProfile(s.validate, in); err != nil {
		return err
	}

	// Escaping is independent of the forbidden-character rule above: the
	// rule rejects hostile bio input outright, escaping also neutralizes
	// legitimate markup-significant characters such as ampersands in names.
	name := html.EscapeString(in.Name)
	bio := html.EscapeString(in.Bio)

	email, err := s.codec.Encrypt(in.Email)
	if err != nil {
		return fmt.Errorf("encrypt email: %w", err)
	}
	encBio, err := s.codec.Encrypt(bio)
	if err != nil {
		return fmt.Errorf("encrypt bio: %w", err)
	}

	return s.users.UpdateProfile(userID, models.ProfilePatch{
		Name:  name,
		Email: email,
		Bio:   encBio,
	})
}
