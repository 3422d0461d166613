package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBunContentRepository_Projects(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunContentRepository[models.Project](db)
	ctx := context.Background()

	owner := createTestUser(t, db, "dave")

	project := &models.Project{
		Title:        "Rover",
		Category:     "robotics",
		Description:  "Mars rover prototype",
		Technologies: models.StringList{"go", "ros"},
	}
	project.CreatorID = owner.ID

	t.Run("create", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, project))
		assert.NotZero(t, project.ID)
		assert.False(t, project.CreatedAt.IsZero())
	})

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rover", got.Title)
		assert.Equal(t, owner.ID, got.CreatorID)
		assert.Equal(t, models.StringList{"go", "ros"}, got.Technologies)
		assert.Empty(t, got.Team)

		_, err = repo.Get(ctx, 424242)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("update keeps creator", func(t *testing.T) {
		got, err := repo.Get(ctx, project.ID)
		require.NoError(t, err)

		got.Title = "Rover v2"
		got.CreatorID = 9999
		require.NoError(t, repo.Update(ctx, got))

		reloaded, err := repo.Get(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rover v2", reloaded.Title)
		assert.Equal(t, owner.ID, reloaded.CreatorID)
	})

	t.Run("list newest first", func(t *testing.T) {
		second := &models.Project{Title: "Drone", Category: "aero", Description: "quadcopter"}
		second.CreatorID = owner.ID
		require.NoError(t, repo.Create(ctx, second))

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Drone", list[0].Title)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, project.ID))

		err := repo.Delete(ctx, project.ID)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestBunContentRepository_Kinds(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, db, "erin")

	blog := &models.Blog{Title: "Hello", Excerpt: "hi", Content: "body", Category: "news", Author: "erin"}
	blog.CreatorID = owner.ID
	require.NoError(t, NewBunContentRepository[models.Blog](db).Create(ctx, blog))

	research := &models.Research{Title: "Paper", Category: "ml", Description: "d", Authors: models.StringList{"erin"}, Citations: 3}
	research.CreatorID = owner.ID
	require.NoError(t, NewBunContentRepository[models.Research](db).Create(ctx, research))

	event := &models.Event{Title: "Hackathon", Type: "competition", Date: "2026-03-01", Location: "Lab", Description: "24h"}
	event.CreatorID = owner.ID
	eventRepo := NewBunContentRepository[models.Event](db)
	require.NoError(t, eventRepo.Create(ctx, event))

	got, err := eventRepo.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KindEvent, got.Kind())
	assert.Equal(t, "Hackathon", got.Title)
}
