package access

import (
	"context"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
)

// MessageService guards the internal core team message board.
type MessageService struct {
	*core
	repo repository.MessageRepository
}

// List returns every message, newest first.
func (s *MessageService) List(ctx context.Context, token string) ([]models.Message, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.MessageRead, auth.Ownership{ActorID: actor.UserID}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Create posts a message as the caller.
func (s *MessageService) Create(ctx context.Context, token, content string) (*models.Message, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.MessageCreate, auth.Ownership{ActorID: actor.UserID}); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, validation.MessageCreate, map[string]any{"content": content}); err != nil {
		return nil, err
	}

	msg := &models.Message{UserID: actor.UserID, Content: content}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Delete removes a message. Author or admin only.
func (s *MessageService) Delete(ctx context.Context, token string, id int64) error {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return err
	}

	msg, err := s.repo.Get(ctx, id)
	if err != nil {
		return notFound(err, "message %d", id)
	}
	if err := s.authorize(actor, auth.MessageDelete, actor.Owns(msg.UserID)); err != nil {
		return err
	}

	return notFound(s.repo.Delete(ctx, id), "message %d", id)
}
