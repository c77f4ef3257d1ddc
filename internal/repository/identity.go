package repository

import (
	"context"
	"encoding/json"
	"strings"

	"lostfound/internal/models"
	"lostfound/internal/store"
	"lostfound/internal/validation"
)

// IdentityStore owns the single current-user record of the session.
type IdentityStore interface {
	// Load returns the active identity, or nil when absent. Corrupt
	// data is treated as absent.
	Load(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Clear(ctx context.Context) error
	// Login replaces the active identity with one derived from the
	// email's local part. The password is required but never verified.
	Login(ctx context.Context, in LoginInput) (*models.User, error)
	// Signup replaces the active identity with the submitted record.
	Signup(ctx context.Context, in SignupInput) (*models.User, error)
}

// LoginInput carries the raw login form values.
type LoginInput struct {
	Email    string
	Password string
}

// SignupInput carries the raw signup form values.
type SignupInput struct {
	Name       string
	Email      string
	Department string
	Password   string
	Agree      bool
}

type identityStore struct {
	store  store.Store
	domain string
}

// NewIdentityStore creates an identity store restricted to the given
// institutional email domain.
func NewIdentityStore(st store.Store, domain string) IdentityStore {
	return &identityStore{store: st, domain: domain}
}

func (s *identityStore) Load(ctx context.Context) (*models.User, error) {
	raw, ok, err := s.store.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

func (s *identityStore) Save(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, userKey, string(raw))
}

func (s *identityStore) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, userKey)
}

func (s *identityStore) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, models.NewValidationError("Enter email and password")
	}
	if !validation.InstitutionalEmail(email, s.domain) {
		return nil, models.NewValidationError("Only @" + s.domain + " accounts can log in")
	}

	// Login never asks for a display name; derive it from the local part.
	name := email[:strings.Index(email, "@")]
	if name == "" {
		name = "User"
	}

	user := &models.User{
		Name:       name,
		Email:      email,
		Department: models.DefaultDepartment,
	}
	if err := s.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *identityStore) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if in.Name == "" || email == "" || in.Password == "" || in.Department == "" || !in.Agree {
		return nil, models.NewValidationError("Fill all required fields and accept the agreement")
	}
	if !validation.InstitutionalEmail(email, s.domain) {
		return nil, models.NewValidationError("Sign up is restricted to @" + s.domain + " emails")
	}

	user := &models.User{
		Name:       in.Name,
		Email:      email,
		Department: in.Department,
	}
	if err := s.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
