package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/identitystore/internal/config"
	"github.com/dmitrijs2005/identitystore/internal/logging"
	"github.com/dmitrijs2005/identitystore/internal/models"
	"github.com/dmitrijs2005/identitystore/internal/store"
)

const testPassword = "s3cret-pw"

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:               "k",
		TokenValidityDuration:   15 * time.Minute,
		BcryptCost:              bcrypt.MinCost,
		MaxFailedAccessAttempts: 3,
		LockoutDuration:         5 * time.Minute,
		LockoutOnNewUsers:       true,
		PasswordMinLength:       6,
		RecoveryCodeCount:       5,
	}
}

func newTestService(t *testing.T) (*UserService, *store.MemoryStore, *fakeClock) {
	t.Helper()
	st := store.NewMemoryStore()
	clk := &fakeClock{t: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
	svc := NewUserService(st, testConfig(), logging.Nop(), WithClock(clk.Now))
	return svc, st, clk
}

func mustRegister(t *testing.T, svc *UserService, name string) *models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), name, name+"@example.com", testPassword)
	require.NoError(t, err)
	return u
}
