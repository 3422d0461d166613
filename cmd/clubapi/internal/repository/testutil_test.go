package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/dbtest"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()
	return dbtest.Open(t)
}

func createTestUser(t *testing.T, db bun.IDB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@club.test", username),
		PasswordHash: "x",
		Role:         "aspirant",
	}
	require.NoError(t, NewBunUserRepository(db).Create(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}
