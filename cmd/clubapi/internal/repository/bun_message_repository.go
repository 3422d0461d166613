package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/uptrace/bun"
)

// BunMessageRepository implements MessageRepository using Bun ORM
type BunMessageRepository struct {
	db bun.IDB
}

// NewBunMessageRepository creates a new Bun-based message repository
func NewBunMessageRepository(db bun.IDB) *BunMessageRepository {
	return &BunMessageRepository{db: db}
}

// Create inserts a message
func (r *BunMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	msg.CreatedAt = time.Now().UTC()

	_, err := r.db.NewInsert().
		Model(msg).
		Exec(ctx)
	return translate(err, "create message")
}

// Get retrieves a message by ID
func (r *BunMessageRepository) Get(ctx context.Context, id int64) (*models.Message, error) {
	msg := new(models.Message)
	err := r.db.NewSelect().
		Model(msg).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("get message %d", id))
	}
	return msg, nil
}

// List returns all messages, newest first
func (r *BunMessageRepository) List(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.NewSelect().
		Model(&msgs).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list messages")
	}
	return msgs, nil
}

// Delete removes a message
func (r *BunMessageRepository) Delete(ctx context.Context, id int64) error {
	op := fmt.Sprintf("delete message %d", id)
	res, err := r.db.NewDelete().
		Model((*models.Message)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return translate(err, op)
	}
	return expectOne(res, op)
}
