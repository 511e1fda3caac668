package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserClone_DeepCopiesLockoutEnd(t *testing.T) {
	end := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	u := &User{
		ID:                 "u-1",
		UserName:           "alice",
		NormalizedUserName: "ALICE",
		PasswordHash:       "hash",
		LockoutEnabled:     true,
		LockoutEnd:         &end,
		AccessFailedCount:  2,
	}

	c := u.Clone()
	assert.Equal(t, u, c)
	assert.NotSame(t, u, c)
	assert.NotSame(t, u.LockoutEnd, c.LockoutEnd)

	*c.LockoutEnd = end.Add(time.Hour)
	c.AccessFailedCount = 9
	assert.Equal(t, end, *u.LockoutEnd)
	assert.Equal(t, 2, u.AccessFailedCount)
}

func TestUserClone_Nil(t *testing.T) {
	var u *User
	assert.Nil(t, u.Clone())
	assert.Nil(t, (&User{}).Clone().LockoutEnd)
}

func TestClaimMatches(t *testing.T) {
	c := Claim{Type: "role", Value: "admin", ValueType: "string"}

	assert.True(t, c.Matches(Claim{Type: "role", Value: "admin", ValueType: "string"}))
	assert.False(t, c.Matches(Claim{Type: "role", Value: "admin"}))
	assert.False(t, c.Matches(Claim{Type: "role", Value: "user", ValueType: "string"}))
}

func TestLoginIs(t *testing.T) {
	l := Login{LoginProvider: "github", ProviderKey: "42", ProviderDisplayName: "GitHub"}

	assert.True(t, l.Is("github", "42"))
	assert.False(t, l.Is("github", "43"))
	assert.False(t, l.Is("google", "42"))
}
