package access

import (
	"context"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
)

// UserService guards member accounts.
type UserService struct {
	*core
}

// Register is the public sign-up. New members are always aspirants.
func (s *UserService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	user, err := s.users.CreateUser(ctx, username, password, email)
	if err != nil {
		return nil, err
	}
	s.log.Infof("[Access] New member %q signed up", user.Username)
	return user, nil
}

// Me returns the caller's own account.
func (s *UserService) Me(ctx context.Context, token string) (*models.User, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.UserReadSelf, actor.Owns(actor.UserID)); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, actor.UserID)
}

// UpdateMe edits the caller's profile fields. Role and credentials are not
// part of the profile.
func (s *UserService) UpdateMe(ctx context.Context, token string, payload map[string]any) (*models.User, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.UserUpdateSelf, actor.Owns(actor.UserID)); err != nil {
		return nil, err
	}

	fields := stripServerOwned(payload)
	if err := s.validate(ctx, validation.ProfileUpdate, fields); err != nil {
		return nil, err
	}

	var patch models.ProfilePatch
	if err := decodePayload(fields, &patch); err != nil {
		return nil, err
	}
	return s.users.UpdateProfile(ctx, actor.UserID, patch)
}

// Get returns any member's account. Admin only.
func (s *UserService) Get(ctx context.Context, token string, id int64) (*models.User, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.UserRead, actor.Owns(id)); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, id)
}

// ListUsers lists members, optionally only those holding role. Admin only.
func (s *UserService) ListUsers(ctx context.Context, token, role string) ([]models.User, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.UserList, auth.Ownership{ActorID: actor.UserID}); err != nil {
		return nil, err
	}

	if role == "" {
		return s.users.ListUsers(ctx)
	}
	r, err := auth.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return s.users.ListUsersByRole(ctx, r)
}

// SetUserRole assigns a role to a member. Admin only; an unrecognized role
// fails with auth.ErrInvalidRole and changes nothing.
func (s *UserService) SetUserRole(ctx context.Context, token string, userID int64, role string) (*models.User, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.UserSetRole, actor.Owns(userID)); err != nil {
		return nil, err
	}

	r, err := auth.ParseRole(role)
	if err != nil {
		return nil, err
	}

	user, err := s.users.SetUserRole(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	s.log.Infof("[Access] User %d set role of user %d to %s", actor.UserID, userID, r)
	return user, nil
}
