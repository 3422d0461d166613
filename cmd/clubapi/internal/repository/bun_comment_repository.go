package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/uptrace/bun"
)

// BunCommentRepository implements CommentRepository using Bun ORM
type BunCommentRepository struct {
	db bun.IDB
}

// NewBunCommentRepository creates a new Bun-based comment repository
func NewBunCommentRepository(db bun.IDB) *BunCommentRepository {
	return &BunCommentRepository{db: db}
}

// Create inserts a comment
func (r *BunCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(comment).
		Exec(ctx)
	return translate(err, "create comment")
}

// Get retrieves a comment by ID
func (r *BunCommentRepository) Get(ctx context.Context, id int64) (*models.Comment, error) {
	comment := new(models.Comment)
	err := r.db.NewSelect().
		Model(comment).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("get comment %d", id))
	}
	return comment, nil
}

// ListByTarget returns the comments on one project, blog or research item, oldest first
func (r *BunCommentRepository) ListByTarget(ctx context.Context, kind models.Kind, targetID int64) ([]models.Comment, error) {
	column, ok := models.TargetColumn(kind)
	if !ok {
		return nil, fmt.Errorf("list comments: %s is not commentable", kind)
	}

	var comments []models.Comment
	err := r.db.NewSelect().
		Model(&comments).
		Where("? = ?", bun.Ident(column), targetID).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list comments by target")
	}
	return comments, nil
}

// ListByUser returns a user's comments, newest first
func (r *BunCommentRepository) ListByUser(ctx context.Context, userID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.NewSelect().
		Model(&comments).
		Where("user_id = ?", userID).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list comments by user")
	}
	return comments, nil
}

// UpdateContent rewrites the body of a comment and returns the updated row
func (r *BunCommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*models.Comment, error) {
	op := fmt.Sprintf("update comment %d", id)
	res, err := r.db.NewUpdate().
		Model((*models.Comment)(nil)).
		Set("content = ?", content).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, translate(err, op)
	}
	if err := expectOne(res, op); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete removes a comment
func (r *BunCommentRepository) Delete(ctx context.Context, id int64) error {
	op := fmt.Sprintf("delete comment %d", id)
	res, err := r.db.NewDelete().
		Model((*models.Comment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return translate(err, op)
	}
	return expectOne(res, op)
}
