package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
)

// RegistrationService guards event sign-ups.
type RegistrationService struct {
	*core
	repo repository.RegistrationRepository
}

// Register signs the caller up for an event. A second sign-up for the same
// event fails with auth.ErrAlreadyRegistered and leaves one row.
func (s *RegistrationService) Register(ctx context.Context, token string, eventID int64) (*models.EventRegistration, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.RegistrationCreate, auth.Ownership{ActorID: actor.UserID}); err != nil {
		return nil, err
	}
	if eventID <= 0 {
		return nil, fmt.Errorf("%w: event_id must be positive", auth.ErrInvalidInput)
	}
	if err := s.targetExists(ctx, models.KindEvent, eventID); err != nil {
		return nil, err
	}

	_, err = s.repo.Find(ctx, actor.UserID, eventID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: event %d", auth.ErrAlreadyRegistered, eventID)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	reg := &models.EventRegistration{UserID: actor.UserID, EventID: eventID}
	if err := s.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			// lost a race with a concurrent sign-up
			return nil, fmt.Errorf("%w: event %d", auth.ErrAlreadyRegistered, eventID)
		}
		return nil, err
	}

	s.log.Infof("[Access] User %d registered for event %d", actor.UserID, eventID)
	return reg, nil
}

// Cancel withdraws a registration. Owner or admin only.
func (s *RegistrationService) Cancel(ctx context.Context, token string, id int64) error {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return err
	}

	reg, err := s.repo.Get(ctx, id)
	if err != nil {
		return notFound(err, "registration %d", id)
	}
	if err := s.authorize(actor, auth.RegistrationDelete, actor.Owns(reg.UserID)); err != nil {
		return err
	}

	return notFound(s.repo.Delete(ctx, id), "registration %d", id)
}

// ListMine returns the caller's registrations.
func (s *RegistrationService) ListMine(ctx context.Context, token string) ([]models.EventRegistration, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.RegistrationReadSelf, actor.Owns(actor.UserID)); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, actor.UserID)
}

// ListForEvent returns the attendee list of an event. Core team and admins only.
func (s *RegistrationService) ListForEvent(ctx context.Context, token string, eventID int64) ([]models.EventRegistration, error) {
	actor, err := s.actor(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, auth.RegistrationList, auth.Ownership{ActorID: actor.UserID}); err != nil {
		return nil, err
	}
	if err := s.targetExists(ctx, models.KindEvent, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}
