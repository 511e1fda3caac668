package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/identitystore/internal/models"
)

func TestLogins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustCreate(t, s, "alice")
	mustCreate(t, s, "bob")

	gh := models.Login{LoginProvider: "github", ProviderKey: "42", ProviderDisplayName: "GitHub"}
	gl := models.Login{LoginProvider: "gitlab", ProviderKey: "42"}

	require.NoError(t, s.AddLogin(ctx, alice.ID, gh))
	require.NoError(t, s.AddLogin(ctx, alice.ID, gl))

	logins, err := s.GetLogins(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Login{gh, gl}, logins)

	found, err := s.FindByLogin(ctx, "github", "42")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, alice.ID, found.ID)

	found, err = s.FindByLogin(ctx, "github", "43")
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, s.RemoveLogin(ctx, alice.ID, "github", "42"))
	logins, _ = s.GetLogins(ctx, alice.ID)
	assert.Equal(t, []models.Login{gl}, logins)

	found, _ = s.FindByLogin(ctx, "github", "42")
	assert.Nil(t, found)
}

func TestLogins_UnknownUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	logins, err := s.GetLogins(ctx, "ghost")
	require.NoError(t, err)
	assert.NotNil(t, logins)
	assert.Empty(t, logins)

	require.NoError(t, s.RemoveLogin(ctx, "ghost", "github", "1"))
	assert.Equal(t, 0, s.details.len())
}
