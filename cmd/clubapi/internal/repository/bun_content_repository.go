package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/uptrace/bun"
)

// BunContentRepository implements ContentRepository for any content entity
// (projects, blogs, research items, events) using Bun ORM.
type BunContentRepository[T any, PT interface {
	*T
	models.Content
}] struct {
	db bun.IDB
}

// NewBunContentRepository creates a content repository for entity type T.
// Example: NewBunContentRepository[models.Project](db)
func NewBunContentRepository[T any, PT interface {
	*T
	models.Content
}](db bun.IDB) *BunContentRepository[T, PT] {
	return &BunContentRepository[T, PT]{db: db}
}

func (r *BunContentRepository[T, PT]) kind() models.Kind {
	return PT(new(T)).Kind()
}

// Create inserts entity and fills in its generated ID
func (r *BunContentRepository[T, PT]) Create(ctx context.Context, entity PT) error {
	meta := entity.Meta()
	now := time.Now().UTC()
	meta.ID = 0
	meta.CreatedAt = now
	meta.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(entity).
		Exec(ctx)
	return translate(err, fmt.Sprintf("create %s", r.kind()))
}

// Get retrieves an entity by ID
func (r *BunContentRepository[T, PT]) Get(ctx context.Context, id int64) (PT, error) {
	entity := PT(new(T))
	err := r.db.NewSelect().
		Model(entity).
		Where("?TableAlias.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("get %s %d", r.kind(), id))
	}
	return entity, nil
}

// List returns all entities, newest first
func (r *BunContentRepository[T, PT]) List(ctx context.Context) ([]PT, error) {
	var rows []T
	err := r.db.NewSelect().
		Model(&rows).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("list %s", r.kind()))
	}

	out := make([]PT, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out, nil
}

// Update writes every mutable column of entity. ID, creator and creation
// time are never rewritten.
func (r *BunContentRepository[T, PT]) Update(ctx context.Context, entity PT) error {
	entity.Meta().UpdatedAt = time.Now().UTC()

	op := fmt.Sprintf("update %s %d", r.kind(), entity.Meta().ID)
	res, err := r.db.NewUpdate().
		Model(entity).
		ExcludeColumn("id", "creator_id", "created_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return translate(err, op)
	}
	return expectOne(res, op)
}

// Delete removes an entity by ID
func (r *BunContentRepository[T, PT]) Delete(ctx context.Context, id int64) error {
	op := fmt.Sprintf("delete %s %d", r.kind(), id)
	res, err := r.db.NewDelete().
		Model(PT(new(T))).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return translate(err, op)
	}
	return expectOne(res, op)
}
