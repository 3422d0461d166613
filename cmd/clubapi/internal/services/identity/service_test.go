package identity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/dbtest"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/telemetry"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := dbtest.Open(t)
	return NewService(repository.NewBunUserRepository(db), telemetry.NewNopLogger())
}

func TestCreateUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("new users are aspirants", func(t *testing.T) {
		user, err := svc.CreateUser(ctx, "alice", "password1", "alice@club.test")
		require.NoError(t, err)
		assert.Equal(t, string(auth.RoleAspirant), user.Role)
		assert.NotEqual(t, "password1", user.PasswordHash)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, "alice", "password2", "other@club.test")
		assert.True(t, errors.Is(err, auth.ErrDuplicateUsername))

		first, err := svc.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@club.test", first.Email, "first user unaffected")
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, "alice2", "password2", "alice@club.test")
		assert.True(t, errors.Is(err, auth.ErrDuplicateEmail))
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := []struct{ username, password, email string }{
			{"", "password1", "x@club.test"},
			{"ab", "password1", "x@club.test"},
			{"has space", "password1", "x@club.test"},
			{"bob", "short", "bob@club.test"},
			{"bob", "password1", "not-an-email"},
			{"bob", "password1", "Bob <bob@club.test>"},
			{"bob", strings.Repeat("p", MaxPasswordLength+1), "bob@club.test"},
		}
		for _, c := range cases {
			_, err := svc.CreateUser(ctx, c.username, c.password, c.email)
			assert.True(t, errors.Is(err, auth.ErrInvalidInput), "%+v", c)
		}
	})
}

func TestCreateUser_LongestPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	password := strings.Repeat("p", MaxPasswordLength)
	_, err := svc.CreateUser(ctx, "alice", password, "alice@club.test")
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "alice", password)
	assert.NoError(t, err)
}

func TestCreateUserWithRole_TrimsLikeSignUp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUserWithRole(ctx, "  carol ", "password1", " carol@club.test  ", auth.RoleCoreTeam)
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	assert.Equal(t, "carol@club.test", user.Email)

	_, err = svc.CreateUser(ctx, "carol", "password1", "other@club.test")
	assert.True(t, errors.Is(err, auth.ErrDuplicateUsername))
}

func TestVerifyCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "carol", "correct-horse", "carol@club.test")
	require.NoError(t, err)

	user, err := svc.VerifyCredentials(ctx, "carol", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)

	_, wrongPassword := svc.VerifyCredentials(ctx, "carol", "battery-staple")
	_, unknownUser := svc.VerifyCredentials(ctx, "mallory", "correct-horse")

	assert.Equal(t, auth.ErrInvalidCredentials, wrongPassword)
	assert.Equal(t, auth.ErrInvalidCredentials, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error(), "indistinguishable failures")
}

func TestSetUserRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "dave", "password1", "dave@club.test")
	require.NoError(t, err)

	updated, err := svc.SetUserRole(ctx, user.ID, auth.RoleCoreTeam)
	require.NoError(t, err)
	assert.Equal(t, string(auth.RoleCoreTeam), updated.Role)

	core, err := svc.ListUsersByRole(ctx, auth.RoleCoreTeam)
	require.NoError(t, err)
	assert.Len(t, core, 1)

	_, err = svc.SetUserRole(ctx, user.ID, auth.Role("overlord"))
	assert.True(t, errors.Is(err, auth.ErrInvalidRole))

	_, err = svc.SetUserRole(ctx, 9999, auth.RoleAdmin)
	assert.True(t, errors.Is(err, auth.ErrNotFound))
}

func TestGetUser_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetUserByID(context.Background(), 12345)
	assert.True(t, errors.Is(err, auth.ErrNotFound))

	_, err = svc.GetUserByUsername(context.Background(), "ghost")
	assert.True(t, errors.Is(err, auth.ErrNotFound))
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "erin", "password1", "erin@club.test")
	require.NoError(t, err)

	dept := "Avionics"
	updated, err := svc.UpdateProfile(ctx, user.ID, models.ProfilePatch{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Avionics", updated.Department)

	unchanged, err := svc.UpdateProfile(ctx, user.ID, models.ProfilePatch{})
	require.NoError(t, err)
	assert.Equal(t, "Avionics", unchanged.Department)
}

func TestSeedDevUsers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	n, err := svc.SeedDevUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DevAccounts), n)

	n, err = svc.SeedDevUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "seeding is idempotent")

	admin, err := svc.VerifyCredentials(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, string(auth.RoleAdmin), admin.Role)
	assert.Equal(t, "Administrator", admin.DisplayName)
}
