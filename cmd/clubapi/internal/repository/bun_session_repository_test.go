package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/bunx"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(userID int64, hash string, expiresAt time.Time) *models.Session {
	now := time.Now().UTC()
	return &models.Session{
		ID:         bunx.NewUUIDv7(),
		UserID:     userID,
		TokenHash:  hash,
		CreatedAt:  now,
		LastUsedAt: now,
		ExpiresAt:  expiresAt,
	}
}

func TestBunSessionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunSessionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "carol")
	now := time.Now().UTC()

	live := newTestSession(user.ID, "hash-live", now.Add(time.Hour))
	expired := newTestSession(user.ID, "hash-expired", now.Add(-time.Minute))
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, expired))

	t.Run("get by token hash", func(t *testing.T) {
		got, err := repo.GetByTokenHash(ctx, "hash-live")
		require.NoError(t, err)
		assert.Equal(t, live.ID, got.ID)
		assert.Equal(t, user.ID, got.UserID)

		_, err = repo.GetByTokenHash(ctx, "unknown")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("duplicate token hash", func(t *testing.T) {
		err := repo.Create(ctx, newTestSession(user.ID, "hash-live", now.Add(time.Hour)))
		assert.True(t, errors.Is(err, ErrUniqueViolation))
	})

	t.Run("update last used", func(t *testing.T) {
		require.NoError(t, repo.UpdateLastUsed(ctx, live.ID, now.Add(time.Minute)))
	})

	t.Run("delete expired", func(t *testing.T) {
		n, err := repo.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = repo.GetByTokenHash(ctx, "hash-expired")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("delete by token hash is idempotent", func(t *testing.T) {
		require.NoError(t, repo.DeleteByTokenHash(ctx, "hash-live"))
		require.NoError(t, repo.DeleteByTokenHash(ctx, "hash-live"))

		_, err := repo.GetByTokenHash(ctx, "hash-live")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("delete by user", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newTestSession(user.ID, "a", now.Add(time.Hour))))
		require.NoError(t, repo.Create(ctx, newTestSession(user.ID, "b", now.Add(time.Hour))))

		n, err := repo.DeleteByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}
