package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/dbtest"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/identity"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/telemetry"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	mgr     *Manager
	users   *identity.Service
	clock   *fakeClock
	metrics *telemetry.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	log := telemetry.NewNopLogger()
	users := identity.NewService(repository.NewBunUserRepository(db), log)
	clock := &fakeClock{now: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}
	metrics := telemetry.NewMetrics()

	mgr := NewManager(users, repository.NewBunSessionRepository(db), log, Options{
		TTL:     time.Hour,
		Now:     clock.Now,
		Metrics: metrics,
	})

	_, err := users.CreateUser(context.Background(), "alice", "password1", "alice@club.test")
	require.NoError(t, err)

	return &fixture{mgr: mgr, users: users, clock: clock, metrics: metrics}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, sess, user, err := f.mgr.Login(ctx, "alice", "password1", ClientInfo{UserAgent: "curl/8"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, sess.UserID)
	assert.NotEqual(t, token, sess.TokenHash, "only the hash is stored")
	assert.Equal(t, sess.CreatedAt.Add(time.Hour), sess.ExpiresAt)
	require.NotNil(t, sess.UserAgent)
	assert.Equal(t, "curl/8", *sess.UserAgent)
	assert.Nil(t, sess.IPAddress)

	stored, err := f.users.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.LoginAttempts.WithLabelValues("success")))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, _, errWrongPassword := f.mgr.Login(ctx, "alice", "wrong-password", ClientInfo{})
	_, _, _, errUnknownUser := f.mgr.Login(ctx, "mallory", "password1", ClientInfo{})

	assert.ErrorIs(t, errWrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, auth.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error(), "failures must be indistinguishable")
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.LoginAttempts.WithLabelValues("invalid")))
}

func TestResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, _, user, err := f.mgr.Login(ctx, "alice", "password1", ClientInfo{})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		id, err := f.mgr.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, id)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := f.mgr.Resolve(ctx, "")
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := f.mgr.Resolve(ctx, "deadbeef")
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("each login gets its own token", func(t *testing.T) {
		second, _, _, err := f.mgr.Login(ctx, "alice", "password1", ClientInfo{})
		require.NoError(t, err)
		assert.NotEqual(t, token, second)

		id, err := f.mgr.Resolve(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, user.ID, id)
	})
}

func TestResolve_Expired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, _, _, err := f.mgr.Login(ctx, "alice", "password1", ClientInfo{})
	require.NoError(t, err)

	f.clock.Advance(59 * time.Minute)
	_, err = f.mgr.Resolve(ctx, token)
	require.NoError(t, err, "activity does not extend an absolute TTL but the session is still live")

	f.clock.Advance(time.Minute)
	_, err = f.mgr.Resolve(ctx, token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	// the expired row was removed on first sight
	f.clock.Advance(-time.Hour)
	_, err = f.mgr.Resolve(ctx, token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestDestroy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, _, _, err := f.mgr.Login(ctx, "alice", "password1", ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, f.mgr.Destroy(ctx, token))
	_, err = f.mgr.Resolve(ctx, token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	assert.NoError(t, f.mgr.Destroy(ctx, token), "destroy is idempotent")
	assert.NoError(t, f.mgr.Destroy(ctx, ""))
	assert.NoError(t, f.mgr.Destroy(ctx, "never-issued"))
}

func TestDestroyAllForUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, _, user, err := f.mgr.Login(ctx, "alice", "password1", ClientInfo{})
	require.NoError(t, err)
	b, _, _, err := f.mgr.Login(ctx, "alice", "password1", ClientInfo{})
	require.NoError(t, err)

	n, err := f.mgr.DestroyAllForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for _, tok := range []string{a, b} {
		_, err := f.mgr.Resolve(ctx, tok)
		assert.True(t, errors.Is(err, auth.ErrUnauthenticated))
	}
}

func TestPrune(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old, _, _, err := f.mgr.Login(ctx, "alice", "password1", ClientInfo{})
	require.NoError(t, err)

	f.clock.Advance(30 * time.Minute)
	fresh, _, _, err := f.mgr.Login(ctx, "alice", "password1", ClientInfo{})
	require.NoError(t, err)

	f.clock.Advance(45 * time.Minute)
	n, err := f.mgr.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SessionsPruned))

	_, err = f.mgr.Resolve(ctx, fresh)
	assert.NoError(t, err)
	_, err = f.mgr.Resolve(ctx, old)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestRunPruner_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.mgr.RunPruner(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop after cancel")
	}
}

func TestNewManager_DefaultTTL(t *testing.T) {
	mgr := NewManager(nil, nil, telemetry.NewNopLogger(), Options{})
	assert.Equal(t, auth.SessionDuration, mgr.TTL())
}
