package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/session"
)

func (f *fixture) event(t *testing.T, token string) *models.Event {
	t.Helper()
	ev, err := f.gw.Events.Create(context.Background(), token, map[string]any{
		"title": "Hack Night", "type": "workshop", "date": "2026-02-01",
		"location": "Lab 3", "description": "Bring a laptop",
	})
	require.NoError(t, err)
	return ev
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	coreTok, _ := f.member(t, "meera", auth.RoleCoreTeam)
	aliceTok, alice := f.member(t, "alice", auth.RoleAspirant)
	bobTok, _ := f.member(t, "bob", auth.RoleAspirant)
	adminTok, _ := f.member(t, "root", auth.RoleAdmin)

	blog, err := f.gw.Blogs.Create(ctx, coreTok, map[string]any{
		"title": "Launch", "excerpt": "e", "content": "c", "category": "news", "author": "meera",
	})
	require.NoError(t, err)

	c, err := f.gw.Comments.Create(ctx, aliceTok, map[string]any{
		"content": "great post", "blog_id": float64(blog.ID), "user_id": float64(999),
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, c.UserID)

	t.Run("anonymous create", func(t *testing.T) {
		_, err := f.gw.Comments.Create(ctx, "", map[string]any{"content": "x", "blog_id": float64(blog.ID)})
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("two targets", func(t *testing.T) {
		_, err := f.gw.Comments.Create(ctx, aliceTok, map[string]any{
			"content": "x", "blog_id": float64(blog.ID), "project_id": float64(1),
		})
		assert.ErrorIs(t, err, auth.ErrInvalidInput)
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := f.gw.Comments.Create(ctx, aliceTok, map[string]any{"content": "x", "research_id": float64(404)})
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("list for target is public", func(t *testing.T) {
		list, err := f.gw.Comments.ListForTarget(ctx, models.KindBlog, blog.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "great post", list[0].Content)

		_, err = f.gw.Comments.ListForTarget(ctx, models.KindEvent, 1)
		assert.ErrorIs(t, err, auth.ErrInvalidInput)

		_, err = f.gw.Comments.ListForTarget(ctx, models.KindProject, 404)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("list mine", func(t *testing.T) {
		mine, err := f.gw.Comments.ListMine(ctx, aliceTok)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		theirs, err := f.gw.Comments.ListMine(ctx, bobTok)
		require.NoError(t, err)
		assert.Empty(t, theirs)
	})

	t.Run("only the author edits", func(t *testing.T) {
		_, err := f.gw.Comments.Update(ctx, bobTok, c.ID, map[string]any{"content": "spam"})
		assert.ErrorIs(t, err, auth.ErrForbidden)

		_, err = f.gw.Comments.Update(ctx, coreTok, c.ID, map[string]any{"content": "spam"})
		assert.ErrorIs(t, err, auth.ErrForbidden, "core team does not moderate comments")

		updated, err := f.gw.Comments.Update(ctx, aliceTok, c.ID, map[string]any{"content": "great post!"})
		require.NoError(t, err)
		assert.Equal(t, "great post!", updated.Content)

		_, err = f.gw.Comments.Update(ctx, aliceTok, c.ID, map[string]any{"content": ""})
		assert.ErrorIs(t, err, auth.ErrInvalidInput)
	})

	t.Run("admin deletes any comment", func(t *testing.T) {
		assert.ErrorIs(t, f.gw.Comments.Delete(ctx, bobTok, c.ID), auth.ErrForbidden)
		require.NoError(t, f.gw.Comments.Delete(ctx, adminTok, c.ID))
		assert.ErrorIs(t, f.gw.Comments.Delete(ctx, adminTok, c.ID), auth.ErrNotFound)
	})
}

func TestRegistrations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	coreTok, _ := f.member(t, "meera", auth.RoleCoreTeam)
	aliceTok, alice := f.member(t, "alice", auth.RoleAspirant)
	bobTok, _ := f.member(t, "bob", auth.RoleAspirant)
	adminTok, _ := f.member(t, "root", auth.RoleAdmin)
	ev := f.event(t, coreTok)

	reg, err := f.gw.Registrations.Register(ctx, aliceTok, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, reg.UserID)

	_, err = f.gw.Registrations.Register(ctx, aliceTok, ev.ID)
	assert.ErrorIs(t, err, auth.ErrAlreadyRegistered)

	_, err = f.gw.Registrations.Register(ctx, aliceTok, ev.ID+100)
	assert.ErrorIs(t, err, auth.ErrNotFound)

	_, err = f.gw.Registrations.Register(ctx, "", ev.ID)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	mine, err := f.gw.Registrations.ListMine(ctx, aliceTok)
	require.NoError(t, err)
	assert.Len(t, mine, 1, "no duplicate row")

	_, err = f.gw.Registrations.ListForEvent(ctx, aliceTok, ev.ID)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	attendees, err := f.gw.Registrations.ListForEvent(ctx, coreTok, ev.ID)
	require.NoError(t, err)
	assert.Len(t, attendees, 1)

	assert.ErrorIs(t, f.gw.Registrations.Cancel(ctx, bobTok, reg.ID), auth.ErrForbidden)
	require.NoError(t, f.gw.Registrations.Cancel(ctx, aliceTok, reg.ID))

	// cancelled sign-ups can be made again; admins may cancel anyone's
	again, err := f.gw.Registrations.Register(ctx, aliceTok, ev.ID)
	require.NoError(t, err)
	require.NoError(t, f.gw.Registrations.Cancel(ctx, adminTok, again.ID))
	assert.ErrorIs(t, f.gw.Registrations.Cancel(ctx, adminTok, again.ID), auth.ErrNotFound)
}

func TestMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	meeraTok, meera := f.member(t, "meera", auth.RoleCoreTeam)
	arjunTok, _ := f.member(t, "arjun", auth.RoleCoreTeam)
	aliceTok, _ := f.member(t, "alice", auth.RoleAspirant)
	adminTok, _ := f.member(t, "root", auth.RoleAdmin)

	_, err := f.gw.Messages.Create(ctx, aliceTok, "hi")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.gw.Messages.List(ctx, aliceTok)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.gw.Messages.List(ctx, "")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = f.gw.Messages.Create(ctx, meeraTok, "")
	assert.ErrorIs(t, err, auth.ErrInvalidInput)

	msg, err := f.gw.Messages.Create(ctx, meeraTok, "standup at 5")
	require.NoError(t, err)
	assert.Equal(t, meera.ID, msg.UserID)

	list, err := f.gw.Messages.List(ctx, arjunTok)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, f.gw.Messages.Delete(ctx, arjunTok, msg.ID), auth.ErrForbidden)
	require.NoError(t, f.gw.Messages.Delete(ctx, adminTok, msg.ID))

	list, err = f.gw.Messages.List(ctx, meeraTok)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adminTok, _ := f.member(t, "root", auth.RoleAdmin)

	u, err := f.gw.Users.Register(ctx, "alice", "password1", "alice@club.test")
	require.NoError(t, err)
	assert.Equal(t, "aspirant", u.Role)

	_, err = f.gw.Users.Register(ctx, "alice", "password1", "other@club.test")
	assert.ErrorIs(t, err, auth.ErrDuplicateUsername)

	aliceTok, _, _, err := f.sessions.Login(ctx, "alice", "password1", session.ClientInfo{})
	require.NoError(t, err)

	t.Run("me", func(t *testing.T) {
		me, err := f.gw.Users.Me(ctx, aliceTok)
		require.NoError(t, err)
		assert.Equal(t, u.ID, me.ID)

		_, err = f.gw.Users.Me(ctx, "")
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("update me", func(t *testing.T) {
		me, err := f.gw.Users.UpdateMe(ctx, aliceTok, map[string]any{"bio": "robotics", "tags": []any{"ros"}})
		require.NoError(t, err)
		assert.Equal(t, "robotics", me.Bio)
		assert.Equal(t, models.StringList{"ros"}, me.Tags)

		_, err = f.gw.Users.UpdateMe(ctx, aliceTok, map[string]any{"role": "admin"})
		assert.ErrorIs(t, err, auth.ErrInvalidInput)

		me, err = f.gw.Users.Me(ctx, aliceTok)
		require.NoError(t, err)
		assert.Equal(t, "aspirant", me.Role)
	})

	t.Run("no self promotion", func(t *testing.T) {
		_, err := f.gw.Users.SetUserRole(ctx, aliceTok, u.ID, "admin")
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("admin listing", func(t *testing.T) {
		_, err := f.gw.Users.ListUsers(ctx, aliceTok, "")
		assert.ErrorIs(t, err, auth.ErrForbidden)

		all, err := f.gw.Users.ListUsers(ctx, adminTok, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		admins, err := f.gw.Users.ListUsers(ctx, adminTok, "admin")
		require.NoError(t, err)
		assert.Len(t, admins, 1)

		_, err = f.gw.Users.ListUsers(ctx, adminTok, "wizard")
		assert.ErrorIs(t, err, auth.ErrInvalidRole)

		_, err = f.gw.Users.Get(ctx, aliceTok, u.ID)
		assert.ErrorIs(t, err, auth.ErrForbidden)

		got, err := f.gw.Users.Get(ctx, adminTok, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("set role", func(t *testing.T) {
		_, err := f.gw.Users.SetUserRole(ctx, adminTok, u.ID, "wizard")
		assert.ErrorIs(t, err, auth.ErrInvalidRole)

		_, err = f.gw.Users.SetUserRole(ctx, adminTok, 9999, "admin")
		assert.ErrorIs(t, err, auth.ErrNotFound)

		updated, err := f.gw.Users.SetUserRole(ctx, adminTok, u.ID, "core_team")
		require.NoError(t, err)
		assert.Equal(t, "core_team", updated.Role)

		// role changes apply to the live session on the next request
		actor, err := f.gw.Actor(ctx, aliceTok)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleCoreTeam, actor.Role)
	})
}
