// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/bunx"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/migrations"
)

// Open returns an in-memory SQLite database with every migration applied.
// It also drops the bcrypt cost to the minimum so password tests stay fast.
func Open(t testing.TB) *bun.DB {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost

	ctx := context.Background()
	db, err := bunx.NewDB(ctx, ":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	_, err = migrations.Apply(ctx, db)
	require.NoError(t, err)

	return db
}
