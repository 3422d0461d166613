// Package dashboard picks the landing view a member sees after login.
package dashboard

import (
	"context"
	"errors"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
)

// View is a dashboard variant.
type View string

const (
	ViewAdmin    View = "admin"
	ViewCore     View = "core"
	ViewAspirant View = "aspirant"
	// ViewUnauthenticated sends the client to the login page.
	ViewUnauthenticated View = "unauthenticated"
)

// LoginPath is where unauthenticated visitors are redirected.
const LoginPath = "/login"

// ViewFor maps a user to its dashboard. A nil user is unauthenticated;
// roles other than admin and core_team, including unknown ones, get the
// aspirant view.
func ViewFor(user *models.User) View {
	if user == nil {
		return ViewUnauthenticated
	}
	switch auth.Role(user.Role) {
	case auth.RoleAdmin:
		return ViewAdmin
	case auth.RoleCoreTeam:
		return ViewCore
	default:
		return ViewAspirant
	}
}

// SessionResolver maps a session token to a user id.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

// UserLookup loads a user by id.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Resolver combines the session manager with ViewFor.
type Resolver struct {
	sessions SessionResolver
	users    UserLookup
}

// NewResolver creates a dashboard resolver.
func NewResolver(sessions SessionResolver, users UserLookup) *Resolver {
	return &Resolver{sessions: sessions, users: users}
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	View View         `json:"view"`
	User *models.User `json:"user,omitempty"`
	// Redirect is set for the unauthenticated view.
	Redirect string `json:"redirect,omitempty"`
}

// Resolve returns the dashboard for the holder of token. Missing, expired
// or orphaned sessions resolve to the unauthenticated view rather than an
// error; only store failures are returned.
func (r *Resolver) Resolve(ctx context.Context, token string) (Resolution, error) {
	userID, err := r.sessions.Resolve(ctx, token)
	if errors.Is(err, auth.ErrUnauthenticated) {
		return unauthenticated(), nil
	}
	if err != nil {
		return Resolution{}, err
	}

	user, err := r.users.GetUserByID(ctx, userID)
	if errors.Is(err, auth.ErrNotFound) {
		return unauthenticated(), nil
	}
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{View: ViewFor(user), User: user}, nil
}

func unauthenticated() Resolution {
	return Resolution{View: ViewUnauthenticated, Redirect: LoginPath}
}
