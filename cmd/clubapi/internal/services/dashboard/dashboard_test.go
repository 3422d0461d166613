package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
)

func TestViewFor(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want View
	}{
		{"nil user", nil, ViewUnauthenticated},
		{"admin", &models.User{Role: "admin"}, ViewAdmin},
		{"core team", &models.User{Role: "core_team"}, ViewCore},
		{"aspirant", &models.User{Role: "aspirant"}, ViewAspirant},
		{"unknown role", &models.User{Role: "superuser"}, ViewAspirant},
		{"empty role", &models.User{}, ViewAspirant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ViewFor(tt.user))
		})
	}
}

// mockSessions is a SessionResolver backed by a token map.
type mockSessions struct {
	tokens map[string]int64
	err    error
}

func (m *mockSessions) Resolve(_ context.Context, token string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	id, ok := m.tokens[token]
	if !ok {
		return 0, auth.ErrUnauthenticated
	}
	return id, nil
}

type mockUsers map[int64]*models.User

func (m mockUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return u, nil
}

func TestResolver_Resolve(t *testing.T) {
	users := mockUsers{
		1: {ID: 1, Role: "admin"},
		2: {ID: 2, Role: "core_team"},
		3: {ID: 3, Role: "aspirant"},
	}
	sessions := &mockSessions{tokens: map[string]int64{"a": 1, "c": 2, "s": 3, "orphan": 42}}
	r := NewResolver(sessions, users)
	ctx := context.Background()

	tests := []struct {
		token string
		want  View
	}{
		{"a", ViewAdmin},
		{"c", ViewCore},
		{"s", ViewAspirant},
		{"", ViewUnauthenticated},
		{"expired", ViewUnauthenticated},
		{"orphan", ViewUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			res, err := r.Resolve(ctx, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.View)
			if tt.want == ViewUnauthenticated {
				assert.Equal(t, LoginPath, res.Redirect)
				assert.Nil(t, res.User)
			} else {
				assert.NotNil(t, res.User)
			}
		})
	}
}

func TestResolver_StoreFailure(t *testing.T) {
	boom := errors.New("database is locked")
	r := NewResolver(&mockSessions{err: boom}, mockUsers{})

	_, err := r.Resolve(context.Background(), "a")
	assert.ErrorIs(t, err, boom)
}
