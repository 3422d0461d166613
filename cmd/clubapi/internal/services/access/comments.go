package access

import (
	"context"
	"fmt"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
)

// CommentService guards comments on projects, blogs and research items.
type CommentService struct {
	*core
	repo repository.CommentRepository
}

// ListForTarget returns the comments on one entity, oldest first.
func (s *CommentService) ListForTarget(ctx context.Context, kind models.Kind, targetID int64) ([]models.Comment, error) {
	if err := s.authorize(anonymous, auth.CommentRead, auth.Ownership{}); err != nil {
		return nil, err
	}
	if _, ok := models.TargetColumn(kind); !ok {
		return nil, fmt.Errorf("%w: %s items take no comments", auth.ErrInvalidInput, kind)
	}
	if err := s.targetExists(ctx, kind, targetID); err != nil {
		return nil, err
	}
	return s.repo.ListByTarget(ctx, kind, targetID)
}

// ListMine returns the caller's own comments.
func (s *CommentService) ListMine(ctx context.Context, token string) ([]models.Comment, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.CommentRead, actor.Owns(actor.UserID)); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, actor.UserID)
}

// Create posts a comment by the caller. The payload names exactly one of
// project_id, blog_id or research_id, and that entity must exist.
func (s *CommentService) Create(ctx context.Context, token string, payload map[string]any) (*models.Comment, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.CommentCreate, auth.Ownership{ActorID: actor.UserID}); err != nil {
		return nil, err
	}

	fields := stripServerOwned(payload)
	if err := s.validate(ctx, validation.CommentCreate, fields); err != nil {
		return nil, err
	}

	comment := &models.Comment{}
	if err := decodePayload(fields, comment); err != nil {
		return nil, err
	}
	kind, targetID, ok := comment.Target()
	if !ok {
		return nil, fmt.Errorf("%w: a comment needs exactly one target", auth.ErrInvalidInput)
	}
	if err := s.targetExists(ctx, kind, targetID); err != nil {
		return nil, err
	}

	comment.UserID = actor.UserID
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, notFound(err, "%s %d", kind, targetID)
	}
	return comment, nil
}

// Update rewrites the body of a comment. Owner or admin only.
func (s *CommentService) Update(ctx context.Context, token string, id int64, payload map[string]any) (*models.Comment, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "comment %d", id)
	}
	if err := s.authorize(actor, auth.CommentUpdate, actor.Owns(comment.UserID)); err != nil {
		return nil, err
	}

	fields := stripServerOwned(payload)
	if err := s.validate(ctx, validation.CommentUpdate, fields); err != nil {
		return nil, err
	}
	content, _ := fields["content"].(string)

	updated, err := s.repo.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, notFound(err, "comment %d", id)
	}
	return updated, nil
}

// Delete removes a comment. Owner or admin only.
func (s *CommentService) Delete(ctx context.Context, token string, id int64) error {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return err
	}

	comment, err := s.repo.Get(ctx, id)
	if err != nil {
		return notFound(err, "comment %d", id)
	}
	if err := s.authorize(actor, auth.CommentDelete, actor.Owns(comment.UserID)); err != nil {
		return err
	}

	return notFound(s.repo.Delete(ctx, id), "comment %d", id)
}
