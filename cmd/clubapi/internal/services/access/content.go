package access

import (
	"context"
	"fmt"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
)

// ContentService guards one content collection (projects, blogs, research
// or events). Reads are public; mutations need a session.
type ContentService[T any, PT interface {
	*T
	models.Content
}] struct {
	*core
	kind models.Kind
	repo repository.ContentRepository[PT]
}

func newContentService[T any, PT interface {
	*T
	models.Content
}](c *core, repo repository.ContentRepository[PT]) *ContentService[T, PT] {
	s := &ContentService[T, PT]{core: c, kind: PT(new(T)).Kind(), repo: repo}
	c.targets[s.kind] = s.exists
	return s
}

// Kind returns the collection's content kind.
func (s *ContentService[T, PT]) Kind() models.Kind { return s.kind }

// List returns every entity matching filter, newest first. filter is a
// go-bexpr expression over the JSON fields, e.g. `category == "robotics"`;
// an empty filter matches everything.
func (s *ContentService[T, PT]) List(ctx context.Context, filter string) ([]PT, error) {
	if err := s.authorize(anonymous, auth.ContentAction(s.kind, auth.VerbRead), auth.Ownership{}); err != nil {
		return nil, err
	}

	f, err := auth.CompileFilter(filter)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PT, 0, len(all))
	for _, entity := range all {
		if f.Match(entity) {
			out = append(out, entity)
		}
	}
	return out, nil
}

// Get returns one entity.
func (s *ContentService[T, PT]) Get(ctx context.Context, id int64) (PT, error) {
	if err := s.authorize(anonymous, auth.ContentAction(s.kind, auth.VerbRead), auth.Ownership{}); err != nil {
		return nil, err
	}

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "%s %d", s.kind, id)
	}
	return entity, nil
}

// Create stores a new entity owned by the caller. Server-assigned fields in
// payload are ignored.
func (s *ContentService[T, PT]) Create(ctx context.Context, token string, payload map[string]any) (PT, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.ContentAction(s.kind, auth.VerbCreate), auth.Ownership{ActorID: actor.UserID}); err != nil {
		return nil, err
	}

	fields := stripServerOwned(payload)
	if err := s.validate(ctx, validation.ContentSchema(s.kind, false), fields); err != nil {
		return nil, err
	}

	entity := PT(new(T))
	if err := decodePayload(fields, entity); err != nil {
		return nil, err
	}
	entity.Meta().CreatorID = actor.UserID

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}

	s.log.Infof("[Access] User %d created %s %d", actor.UserID, s.kind, entity.Meta().ID)
	return entity, nil
}

// Update applies a partial payload to an existing entity. Only the owner
// (core team) or an admin may update it.
func (s *ContentService[T, PT]) Update(ctx context.Context, token string, id int64, payload map[string]any) (PT, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "%s %d", s.kind, id)
	}

	if err := s.authorize(actor, auth.ContentAction(s.kind, auth.VerbUpdate), actor.Owns(entity.Meta().CreatorID)); err != nil {
		return nil, err
	}

	fields := stripServerOwned(payload)
	if err := s.validate(ctx, validation.ContentSchema(s.kind, true), fields); err != nil {
		return nil, err
	}
	if err := decodePayload(fields, entity); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, notFound(err, "%s %d", s.kind, id)
	}
	return entity, nil
}

// Delete removes an entity. Only the owner (core team) or an admin may
// delete it.
func (s *ContentService[T, PT]) Delete(ctx context.Context, token string, id int64) error {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return err
	}

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return notFound(err, "%s %d", s.kind, id)
	}

	if err := s.authorize(actor, auth.ContentAction(s.kind, auth.VerbDelete), actor.Owns(entity.Meta().CreatorID)); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "%s %d", s.kind, id)
	}

	s.log.Infof("[Access] User %d deleted %s %d", actor.UserID, s.kind, id)
	return nil
}

func (s *ContentService[T, PT]) exists(ctx context.Context, id int64) error {
	_, err := s.repo.Get(ctx, id)
	return notFound(err, "%s %d", s.kind, id)
}
