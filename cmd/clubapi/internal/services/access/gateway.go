// Package access is the Content Access Gateway. Every read and mutation of
// club content passes through it: the caller's session token is resolved to
// an actor, the Role Policy is consulted with the actor's role and the
// target's owner, and only then is the payload validated and applied.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
)

// SessionResolver maps a session token to a user id.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

// Directory is the subset of the Identity Store the gateway uses.
type Directory interface {
	CreateUser(ctx context.Context, username, password, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role auth.Role) ([]models.User, error)
	SetUserRole(ctx context.Context, id int64, role auth.Role) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, patch models.ProfilePatch) (*models.User, error)
}

// Deps wires the gateway to its collaborators.
type Deps struct {
	Sessions  SessionResolver
	Users     Directory
	Policy    *auth.Policy
	Validator validation.Validator
	Logger    logrus.FieldLogger

	Projects      repository.ContentRepository[*models.Project]
	Blogs         repository.ContentRepository[*models.Blog]
	Research      repository.ContentRepository[*models.Research]
	Events        repository.ContentRepository[*models.Event]
	Comments      repository.CommentRepository
	Registrations repository.RegistrationRepository
	Messages      repository.MessageRepository
}

// Gateway groups the per-collection services.
type Gateway struct {
	Projects      *ContentService[models.Project, *models.Project]
	Blogs         *ContentService[models.Blog, *models.Blog]
	Research      *ContentService[models.Research, *models.Research]
	Events        *ContentService[models.Event, *models.Event]
	Comments      *CommentService
	Registrations *RegistrationService
	Messages      *MessageService
	Users         *UserService

	core *core
}

// New builds a gateway from its dependencies.
func New(d Deps) *Gateway {
	c := &core{
		sessions:  d.Sessions,
		users:     d.Users,
		policy:    d.Policy,
		validator: d.Validator,
		log:       d.Logger,
		targets:   make(map[models.Kind]func(context.Context, int64) error),
	}

	g := &Gateway{
		Projects: newContentService[models.Project](c, d.Projects),
		Blogs:    newContentService[models.Blog](c, d.Blogs),
		Research: newContentService[models.Research](c, d.Research),
		Events:   newContentService[models.Event](c, d.Events),
		core:     c,
	}
	g.Comments = &CommentService{core: c, repo: d.Comments}
	g.Registrations = &RegistrationService{core: c, repo: d.Registrations}
	g.Messages = &MessageService{core: c, repo: d.Messages}
	g.Users = &UserService{core: c}
	return g
}

// Actor resolves token to the acting user. An empty or invalid token fails
// with auth.ErrUnauthenticated.
func (g *Gateway) Actor(ctx context.Context, token string) (auth.Actor, error) {
	return g.core.actor(ctx, token)
}

// core carries what every collection service needs.
type core struct {
	sessions  SessionResolver
	users     Directory
	policy    *auth.Policy
	validator validation.Validator
	log       logrus.FieldLogger

	// targets checks that a content entity exists, keyed by kind.
	targets map[models.Kind]func(context.Context, int64) error
}

func (c *core) actor(ctx context.Context, token string) (auth.Actor, error) {
	// already resolved by the session middleware for this token
	if actor, ok := auth.GetActorFromContext(ctx); ok && token != "" && auth.SessionTokenFromContext(ctx) == token {
		return actor, nil
	}

	userID, err := c.sessions.Resolve(ctx, token)
	if err != nil {
		return auth.Actor{}, err
	}

	user, err := c.users.GetUserByID(ctx, userID)
	if errors.Is(err, auth.ErrNotFound) {
		// the account behind a live session is gone
		return auth.Actor{}, auth.ErrUnauthenticated
	}
	if err != nil {
		return auth.Actor{}, fmt.Errorf("load actor: %w", err)
	}

	return auth.Actor{UserID: user.ID, Username: user.Username, Role: auth.Role(user.Role)}, nil
}

var anonymous = auth.Actor{Role: auth.RoleAnonymous}

func (c *core) authorize(actor auth.Actor, action auth.Action, own auth.Ownership) error {
	if c.policy.CanPerform(actor.Role, action, own) {
		return nil
	}
	c.log.Debugf("[Access] Denied %s to user %d (role=%s, owner=%d)", action, actor.UserID, actor.Role, own.OwnerID)
	return fmt.Errorf("%w: %s", auth.ErrForbidden, action)
}

func (c *core) validate(ctx context.Context, schema validation.Schema, payload any) error {
	return c.validator.Validate(ctx, schema, payload)
}

func (c *core) targetExists(ctx context.Context, kind models.Kind, id int64) error {
	exists, ok := c.targets[kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", auth.ErrInvalidInput, kind)
	}
	return exists(ctx, id)
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
