package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
)

func TestStripServerOwned(t *testing.T) {
	in := map[string]any{"id": 1, "creator_id": 2, "user_id": 3, "created_at": "x", "updated_at": "y", "title": "t"}

	out := stripServerOwned(in)
	assert.Equal(t, map[string]any{"title": "t"}, out)
	assert.Len(t, in, 6, "input is not modified")

	assert.NotNil(t, stripServerOwned(nil))
}

func TestDecodePayload(t *testing.T) {
	p := &models.Project{Title: "old", Category: "ml", Technologies: models.StringList{"a", "b", "c"}}

	require.NoError(t, decodePayload(map[string]any{"title": "new", "technologies": []any{"z"}}, p))
	assert.Equal(t, "new", p.Title)
	assert.Equal(t, "ml", p.Category)
	assert.Equal(t, models.StringList{"z"}, p.Technologies)

	err := decodePayload(map[string]any{"title": []any{"not", "a", "string"}}, p)
	assert.ErrorIs(t, err, auth.ErrInvalidInput)
}
