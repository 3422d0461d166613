// Package identity is the Identity Store: it owns user records, their
// credentials and their roles.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
)

// Password length bounds in bytes. bcrypt cannot hash more than 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

// Service manages club members.
type Service struct {
	users repository.UserRepository
	log   logrus.FieldLogger
}

// NewService creates an identity service over the user repository.
func NewService(users repository.UserRepository, log logrus.FieldLogger) *Service {
	return &Service{users: users, log: log}
}

// CreateUser registers a new member. The role is always aspirant, whatever
// the caller asked for. Duplicate usernames and emails fail with
// auth.ErrDuplicateUsername and auth.ErrDuplicateEmail.
func (s *Service) CreateUser(ctx context.Context, username, password, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateSignUp(username, password, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         string(auth.DefaultRole),
	}
	if err := s.create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("[Identity] Registered user %q (id=%d)", user.Username, user.ID)
	return user, nil
}

// CreateUserWithRole inserts a user holding role. It backs the admin CLI and
// the dev seed; the public sign-up path always goes through CreateUser.
func (s *Service) CreateUserWithRole(ctx context.Context, username, password, email string, role auth.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", auth.ErrInvalidRole, role)
	}
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateSignUp(username, password, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         string(role),
	}
	if err := s.create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) create(ctx context.Context, user *models.User) error {
	err := s.users.Create(ctx, user)
	switch {
	case err == nil:
		return nil
	case repository.ViolatedColumn(err) == "username":
		return fmt.Errorf("%w: %s", auth.ErrDuplicateUsername, user.Username)
	case repository.ViolatedColumn(err) == "email":
		return fmt.Errorf("%w: %s", auth.ErrDuplicateEmail, user.Email)
	default:
		return fmt.Errorf("create user: %w", err)
	}
}

func validateSignUp(username, password, email string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-32 letters, digits, '.', '_' or '-'", auth.ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", auth.ErrInvalidInput, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", auth.ErrInvalidInput, MaxPasswordLength)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: malformed email address", auth.ErrInvalidInput)
	}
	return nil
}

// GetUserByID returns the user or auth.ErrNotFound.
func (s *Service) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	return user, notFound(err, "user %d", id)
}

// GetUserByUsername returns the user or auth.ErrNotFound.
func (s *Service) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	return user, notFound(err, "user %q", username)
}

// ListUsers returns every member ordered by ID.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// ListUsersByRole returns the members holding role.
func (s *Service) ListUsersByRole(ctx context.Context, role auth.Role) ([]models.User, error) {
	return s.users.ListByRole(ctx, string(role))
}

// SetUserRole overwrites the role of a user. Authorization is the caller's
// job; only the role value itself is checked here.
func (s *Service) SetUserRole(ctx context.Context, id int64, role auth.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", auth.ErrInvalidRole, role)
	}
	if err := s.users.UpdateRole(ctx, id, string(role)); err != nil {
		return nil, notFound(err, "user %d", id)
	}

	s.log.Infof("[Identity] Set role of user %d to %s", id, role)
	return s.GetUserByID(ctx, id)
}

// UpdateProfile applies the self-editable profile fields of patch.
func (s *Service) UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cols := patch.Apply(user)
	if len(cols) == 0 {
		return user, nil
	}
	if err := s.users.UpdateProfile(ctx, user, cols); err != nil {
		return nil, notFound(err, "user %d", id)
	}
	return user, nil
}

// VerifyCredentials checks a username and password. Unknown usernames and
// wrong passwords fail identically with auth.ErrInvalidCredentials and cost
// one bcrypt comparison each.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}
	if !auth.CheckPassword(hash, password) || user == nil {
		return nil, auth.ErrInvalidCredentials
	}
	return user, nil
}

// RecordLogin stamps the last login time. Failures are logged, not returned.
func (s *Service) RecordLogin(ctx context.Context, id int64) {
	if err := s.users.UpdateLastLogin(ctx, id, time.Now().UTC()); err != nil {
		s.log.Warnf("[Identity] Failed to record login for user %d: %v", id, err)
	}
}

// notFound translates repository.ErrNotFound into auth.ErrNotFound.
func notFound(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", auth.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}
