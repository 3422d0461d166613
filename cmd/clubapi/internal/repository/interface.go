package repository

import (
	"context"
	"time"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
)

// UserRepository exposes persistence operations for club members.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role string) error
	UpdateProfile(ctx context.Context, user *models.User, columns []string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// SessionRepository exposes persistence operations for login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	UpdateLastUsed(ctx context.Context, id string, at time.Time) error
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ContentRepository exposes persistence operations for one content kind.
// PT is the pointer type of the entity, e.g. *models.Project.
type ContentRepository[PT models.Content] interface {
	Create(ctx context.Context, entity PT) error
	Get(ctx context.Context, id int64) (PT, error)
	List(ctx context.Context) ([]PT, error)
	Update(ctx context.Context, entity PT) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository exposes persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Get(ctx context.Context, id int64) (*models.Comment, error)
	ListByTarget(ctx context.Context, kind models.Kind, targetID int64) ([]models.Comment, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// RegistrationRepository exposes persistence operations for event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.EventRegistration) error
	Get(ctx context.Context, id int64) (*models.EventRegistration, error)
	Find(ctx context.Context, userID, eventID int64) (*models.EventRegistration, error)
	ListByUser(ctx context.Context, userID int64) ([]models.EventRegistration, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.EventRegistration, error)
	Delete(ctx context.Context, id int64) error
}

// MessageRepository exposes persistence operations for core team messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	Get(ctx context.Context, id int64) (*models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
	Delete(ctx context.Context, id int64) error
}
