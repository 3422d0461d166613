package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_ScanValue(t *testing.T) {
	t.Run("scan bytes", func(t *testing.T) {
		var l StringList
		require.NoError(t, l.Scan([]byte(`["go","rust"]`)))
		assert.Equal(t, StringList{"go", "rust"}, l)
	})

	t.Run("scan string", func(t *testing.T) {
		var l StringList
		require.NoError(t, l.Scan(`["alice"]`))
		assert.Equal(t, StringList{"alice"}, l)
	})

	t.Run("scan nil", func(t *testing.T) {
		l := StringList{"stale"}
		require.NoError(t, l.Scan(nil))
		assert.Empty(t, l)
	})

	t.Run("scan wrong type", func(t *testing.T) {
		var l StringList
		assert.Error(t, l.Scan(42))
	})

	t.Run("value nil", func(t *testing.T) {
		v, err := StringList(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("value", func(t *testing.T) {
		v, err := StringList{"a", "b"}.Value()
		require.NoError(t, err)
		assert.Equal(t, `["a","b"]`, v)
	})
}

func TestComment_Target(t *testing.T) {
	id := int64(7)

	kind, got, ok := (&Comment{BlogID: &id}).Target()
	assert.True(t, ok)
	assert.Equal(t, KindBlog, kind)
	assert.Equal(t, id, got)

	_, _, ok = (&Comment{}).Target()
	assert.False(t, ok, "no target")

	_, _, ok = (&Comment{ProjectID: &id, ResearchID: &id}).Target()
	assert.False(t, ok, "two targets")
}

func TestTargetColumn(t *testing.T) {
	col, ok := TargetColumn(KindResearch)
	assert.True(t, ok)
	assert.Equal(t, "research_id", col)

	_, ok = TargetColumn(KindEvent)
	assert.False(t, ok, "events are not commentable")
}

func TestProfilePatch_Apply(t *testing.T) {
	bio := "robotics lead"
	u := &User{DisplayName: "Old", Bio: "old bio"}

	cols := ProfilePatch{Bio: &bio, Tags: []string{"ml"}}.Apply(u)

	assert.ElementsMatch(t, []string{"bio", "tags"}, cols)
	assert.Equal(t, "robotics lead", u.Bio)
	assert.Equal(t, "Old", u.DisplayName)
	assert.Equal(t, StringList{"ml"}, u.Tags)
}

func TestSession_Expired(t *testing.T) {
	s := &Session{}
	s.ExpiresAt = s.CreatedAt.Add(1)
	assert.False(t, s.Expired(s.CreatedAt))
	assert.True(t, s.Expired(s.ExpiresAt))
}
