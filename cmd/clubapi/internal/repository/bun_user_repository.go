package repository

import (
	"context"
	"time"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/uptrace/bun"
)

// Uniquely indexed user columns, in the order violations are attributed.
var userUniqueColumns = []string{"username", "email"}

// BunUserRepository implements UserRepository using Bun ORM
type BunUserRepository struct {
	db bun.IDB
}

// NewBunUserRepository creates a new Bun-based user repository
func NewBunUserRepository(db bun.IDB) *BunUserRepository {
	return &BunUserRepository{db: db}
}

// Create inserts a new user. Duplicate usernames or emails fail with a
// *UniqueViolationError naming the column.
func (r *BunUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(user).
		Exec(ctx)
	return translate(err, "create user", userUniqueColumns...)
}

// GetByID retrieves a user by their ID
func (r *BunUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "get user by ID", "id", id)
}

// GetByUsername retrieves a user by their unique username
func (r *BunUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "get user by username", "username", username)
}

// GetByEmail retrieves a user by their email
func (r *BunUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "get user by email", "email", email)
}

func (r *BunUserRepository) getBy(ctx context.Context, op, column string, value any) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("? = ?", bun.Ident(column), value).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, op)
	}
	return user, nil
}

// List returns all users ordered by ID
func (r *BunUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.NewSelect().
		Model(&users).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list users")
	}
	return users, nil
}

// ListByRole returns all users holding role ordered by ID
func (r *BunUserRepository) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	var users []models.User
	err := r.db.NewSelect().
		Model(&users).
		Where("role = ?", role).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list users by role")
	}
	return users, nil
}

// UpdateRole overwrites the role of a user
func (r *BunUserRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("role = ?", role).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return translate(err, "update user role")
	}
	return expectOne(res, "update user role")
}

// UpdateProfile writes the given profile columns of user
func (r *BunUserRepository) UpdateProfile(ctx context.Context, user *models.User, columns []string) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.db.NewUpdate().
		Model(user).
		Column(append(columns, "updated_at")...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return translate(err, "update user profile", userUniqueColumns...)
	}
	return expectOne(res, "update user profile")
}

// UpdateLastLogin records a successful login
func (r *BunUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_login_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	return translate(err, "update last login")
}
