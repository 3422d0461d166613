package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	for _, bad := range []string{"", "ADMIN", "anonymous", "core-team"} {
		_, err := ParseRole(bad)
		assert.True(t, errors.Is(err, ErrInvalidRole), bad)
	}
}

func TestRoleID(t *testing.T) {
	assert.Equal(t, "role:admin", RoleID(RoleAdmin))
	assert.Equal(t, "role:anonymous", RoleID(Role("root")))
	assert.Equal(t, "role:anonymous", RoleID(""))
}

func TestContentAction(t *testing.T) {
	assert.Equal(t, ResearchDelete, ContentAction(models.KindResearch, VerbDelete))
	assert.Equal(t, "research", ResearchDelete.Object())
	assert.True(t, ValidateAction(EventCreate))
	assert.False(t, ValidateAction("event:publish"))
}

func TestPasswordHashing(t *testing.T) {
	BcryptCost = bcrypt.MinCost

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "s3cret"))

	_, err = HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateBearerToken(t *testing.T) {
	token, hash, err := GenerateBearerToken()
	require.NoError(t, err)
	assert.Len(t, token, TokenLength*2)
	assert.Equal(t, HashBearerToken(token), hash)

	other, _, err := GenerateBearerToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestCalculateExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(SessionDuration), CalculateExpiry(now, 0))
	assert.Equal(t, now.Add(time.Hour), CalculateExpiry(now, time.Hour))
}

func TestTokenFromRequest(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc123")
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie"})
		assert.Equal(t, "abc123", TokenFromRequest(req))
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie"})
		assert.Equal(t, "cookie", TokenFromRequest(req))
	})

	t.Run("basic auth ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		assert.Equal(t, "", TokenFromRequest(req))
	})
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", SessionTokenFromContext(ctx))

	ctx = WithSessionToken(ctx, "tok")
	assert.Equal(t, "tok", SessionTokenFromContext(ctx))

	_, ok := GetActorFromContext(ctx)
	assert.False(t, ok)

	ctx = SetActorContext(ctx, Actor{UserID: 4, Role: RoleCoreTeam})
	actor, ok := GetActorFromContext(ctx)
	require.True(t, ok)
	assert.False(t, actor.Anonymous())
	assert.True(t, actor.Owns(4).Self())
}

func TestFilter(t *testing.T) {
	project := &models.Project{Title: "Rover", Category: "robotics"}

	t.Run("empty matches all", func(t *testing.T) {
		f, err := CompileFilter("  ")
		require.NoError(t, err)
		assert.True(t, f.Match(project))
	})

	t.Run("equality", func(t *testing.T) {
		f, err := CompileFilter(`category == "robotics"`)
		require.NoError(t, err)
		assert.True(t, f.Match(project))

		f, err = CompileFilter(`category == "ai"`)
		require.NoError(t, err)
		assert.False(t, f.Match(project))
	})

	t.Run("cached", func(t *testing.T) {
		a, err := CompileFilter(`title == "Rover"`)
		require.NoError(t, err)
		b, err := CompileFilter(`title == "Rover"`)
		require.NoError(t, err)
		assert.Same(t, a.evaluator, b.evaluator)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := CompileFilter(`category ==`)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}
