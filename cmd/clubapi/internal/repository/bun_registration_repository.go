package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/uptrace/bun"
)

// BunRegistrationRepository implements RegistrationRepository using Bun ORM
type BunRegistrationRepository struct {
	db bun.IDB
}

// NewBunRegistrationRepository creates a new Bun-based event registration repository
func NewBunRegistrationRepository(db bun.IDB) *BunRegistrationRepository {
	return &BunRegistrationRepository{db: db}
}

// Create inserts a registration. A second registration for the same
// (user, event) pair fails with ErrUniqueViolation.
func (r *BunRegistrationRepository) Create(ctx context.Context, reg *models.EventRegistration) error {
	reg.CreatedAt = time.Now().UTC()

	_, err := r.db.NewInsert().
		Model(reg).
		Exec(ctx)
	return translate(err, "create event registration", "user_id", "event_id")
}

// Get retrieves a registration by ID
func (r *BunRegistrationRepository) Get(ctx context.Context, id int64) (*models.EventRegistration, error) {
	reg := new(models.EventRegistration)
	err := r.db.NewSelect().
		Model(reg).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("get event registration %d", id))
	}
	return reg, nil
}

// Find retrieves the registration of a user for an event
func (r *BunRegistrationRepository) Find(ctx context.Context, userID, eventID int64) (*models.EventRegistration, error) {
	reg := new(models.EventRegistration)
	err := r.db.NewSelect().
		Model(reg).
		Where("user_id = ?", userID).
		Where("event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "find event registration")
	}
	return reg, nil
}

// ListByUser returns a user's registrations, newest first
func (r *BunRegistrationRepository) ListByUser(ctx context.Context, userID int64) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	err := r.db.NewSelect().
		Model(&regs).
		Where("user_id = ?", userID).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list registrations by user")
	}
	return regs, nil
}

// ListByEvent returns the registrations of an event in sign-up order
func (r *BunRegistrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	err := r.db.NewSelect().
		Model(&regs).
		Where("event_id = ?", eventID).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list registrations by event")
	}
	return regs, nil
}

// Delete removes a registration
func (r *BunRegistrationRepository) Delete(ctx context.Context, id int64) error {
	op := fmt.Sprintf("delete event registration %d", id)
	res, err := r.db.NewDelete().
		Model((*models.EventRegistration)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return translate(err, op)
	}
	return expectOne(res, op)
}
