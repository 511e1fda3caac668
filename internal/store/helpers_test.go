package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/identitystore/internal/models"
	"github.com/dmitrijs2005/identitystore/internal/normalizer"
)

// sequentialIDs returns an id generator producing user-1, user-2, ...
func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("user-%d", n.Add(1))
	}
}

func newTestStore(t *testing.T, opts ...Option) *MemoryStore {
	t.Helper()
	return NewMemoryStore(append([]Option{WithIDGenerator(sequentialIDs())}, opts...)...)
}

func newUser(name string) *models.User {
	return &models.User{
		UserName:           name,
		NormalizedUserName: normalizer.NormalizeName(name),
		Email:              name + "@example.com",
		NormalizedEmail:    normalizer.NormalizeEmail(name + "@example.com"),
		SecurityStamp:      "stamp-" + name,
		LockoutEnabled:     true,
	}
}

// mustCreate stores a user named name and returns the caller's copy.
func mustCreate(t *testing.T, s *MemoryStore, name string) *models.User {
	t.Helper()
	u := newUser(name)
	require.NoError(t, s.Create(context.Background(), u))
	require.NotEmpty(t, u.ID)
	return u
}
