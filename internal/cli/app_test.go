package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/identitystore/internal/common"
	"github.com/dmitrijs2005/identitystore/internal/config"
	"github.com/dmitrijs2005/identitystore/internal/logging"
	"github.com/dmitrijs2005/identitystore/internal/services"
	"github.com/dmitrijs2005/identitystore/internal/store"
)

const pw = "s3cret-pw"

type harness struct {
	app *App
	svc *services.UserService
	st  *store.MemoryStore
	out *bytes.Buffer
}

// newHarness builds an App over a real service. input feeds the line
// prompts, passwords feeds the password prompts in order.
func newHarness(t *testing.T, input string, passwords ...string) *harness {
	t.Helper()

	capturePrintln(t)

	old := getPassword
	t.Cleanup(func() { getPassword = old })
	getPassword = func(w io.Writer, prompt string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, errors.New("no password queued")
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}

	st := store.NewMemoryStore()
	cfg := &config.Config{
		SecretKey:               "k",
		TokenValidityDuration:   time.Hour,
		BcryptCost:              bcrypt.MinCost,
		MaxFailedAccessAttempts: 3,
		LockoutDuration:         time.Minute,
		LockoutOnNewUsers:       true,
		PasswordMinLength:       6,
		RecoveryCodeCount:       3,
	}
	svc := services.NewUserService(st, cfg, logging.Nop())

	out := &bytes.Buffer{}
	return &harness{
		app: NewApp(svc, logging.Nop(), strings.NewReader(input), out),
		svc: svc,
		st:  st,
		out: out,
	}
}

func (h *harness) register(t *testing.T, name string) string {
	t.Helper()
	u, err := h.svc.Register(context.Background(), name, "", pw)
	require.NoError(t, err)
	return u.ID
}

func TestApp_RegisterLoginSession(t *testing.T) {
	h := newHarness(t, strings.Join([]string{
		"register",
		"alice",
		"alice@example.com",
		"login",
		"ALICE",
		"whoami",
		"roles add admin",
		"roles",
		"claims add dept platform eng",
		"claims",
		"logout",
		"whoami",
		"exit",
	}, "\n")+"\n", pw, pw)

	h.app.Run(context.Background())

	out := h.out.String()
	assert.Contains(t, out, "Registered alice")
	assert.Contains(t, out, "Logged in as alice")
	assert.Contains(t, out, "email:       alice@example.com (confirmed: false)")
	assert.Contains(t, out, "admin\n")
	assert.Contains(t, out, "dept = platform eng\n")
	assert.Contains(t, out, "Logged out")
	assert.False(t, h.app.isLoggedIn())
}

func TestApp_LoginFailure(t *testing.T) {
	h := newHarness(t, "alice\n", "wrong-password")
	h.register(t, "alice")

	err := h.app.Login(context.Background())
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
	assert.False(t, h.app.isLoggedIn())
}

func TestApp_RenameKeepsSession(t *testing.T) {
	h := newHarness(t, "alice\n", pw)
	id := h.register(t, "alice")
	h.register(t, "bob")
	ctx := context.Background()

	require.NoError(t, h.app.Login(ctx))

	err := h.app.Rename(ctx, []string{"BOB"})
	assert.True(t, errors.Is(err, common.ErrorAlreadyExists))

	require.NoError(t, h.app.Rename(ctx, []string{"alicia"}))
	assert.Equal(t, "(alicia) ", h.app.status())

	user, err := h.app.current(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	assert.True(t, errors.Is(h.app.Rename(ctx, nil), errUsage))
}

func TestApp_ExternalStampRotationEndsSession(t *testing.T) {
	h := newHarness(t, "alice\n", pw)
	id := h.register(t, "alice")
	ctx := context.Background()

	require.NoError(t, h.app.Login(ctx))
	require.NoError(t, h.svc.ChangePassword(ctx, id, pw, "another-pw"))

	err := h.app.WhoAmI(ctx)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
	assert.False(t, h.app.isLoggedIn())
}

func TestApp_ChangePassword(t *testing.T) {
	h := newHarness(t, "alice\n", pw, pw, "new-password")
	h.register(t, "alice")
	ctx := context.Background()

	require.NoError(t, h.app.Login(ctx))
	require.NoError(t, h.app.ChangePassword(ctx))
	assert.True(t, h.app.isLoggedIn(), "own change re-issues the token")

	_, err := h.svc.SignIn(ctx, "alice", "new-password")
	assert.NoError(t, err)
}

func TestApp_RecoveryCodes(t *testing.T) {
	h := newHarness(t, "alice\n", pw)
	id := h.register(t, "alice")
	ctx := context.Background()

	require.NoError(t, h.app.Login(ctx))
	require.NoError(t, h.app.Codes(ctx, nil))

	codes, err := h.st.GetCodes(ctx, id)
	require.NoError(t, err)
	require.Len(t, codes, 3)
	for _, c := range codes {
		assert.Contains(t, h.out.String(), c)
	}

	require.NoError(t, h.app.Redeem(ctx, []string{codes[0]}))
	assert.True(t, errors.Is(h.app.Redeem(ctx, []string{codes[0]}), common.ErrorUnauthorized))

	h.out.Reset()
	require.NoError(t, h.app.Codes(ctx, []string{"count"}))
	assert.Equal(t, "2 recovery codes left\n", h.out.String())
}

func TestApp_AuthKeyAndTwoFactor(t *testing.T) {
	h := newHarness(t, "alice\n", pw)
	id := h.register(t, "alice")
	ctx := context.Background()

	require.NoError(t, h.app.Login(ctx))

	h.out.Reset()
	require.NoError(t, h.app.AuthKey(ctx, nil))
	assert.Equal(t, "-\n", h.out.String())

	require.NoError(t, h.app.AuthKey(ctx, []string{"reset"}))
	key, _ := h.st.GetAuthenticatorKey(ctx, id)
	assert.NotEmpty(t, key)
	assert.True(t, h.app.isLoggedIn())

	require.NoError(t, h.app.TwoFactor(ctx, []string{"on"}))
	u, _ := h.svc.GetUser(ctx, id)
	assert.True(t, u.TwoFactorEnabled)

	assert.True(t, errors.Is(h.app.TwoFactor(ctx, []string{"maybe"}), errUsage))
}

func TestApp_Logins(t *testing.T) {
	h := newHarness(t, "alice\n", pw)
	id := h.register(t, "alice")
	ctx := context.Background()

	require.NoError(t, h.app.Login(ctx))
	require.NoError(t, h.app.Logins(ctx, []string{"add", "github", "42", "GitHub"}))

	h.out.Reset()
	require.NoError(t, h.app.Logins(ctx, nil))
	assert.Equal(t, "github 42 GitHub\n", h.out.String())

	require.NoError(t, h.app.Logins(ctx, []string{"remove", "github", "42"}))
	logins, _ := h.svc.GetLogins(ctx, id)
	assert.Empty(t, logins)
	assert.True(t, h.app.isLoggedIn())
}

func TestApp_ListFindUnlock(t *testing.T) {
	h := newHarness(t, "")
	h.register(t, "bob")
	h.register(t, "alice")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = h.svc.SignIn(ctx, "bob", "wrong-password")
	}

	require.NoError(t, h.app.List(ctx))
	out := h.out.String()
	assert.Less(t, strings.Index(out, "alice"), strings.Index(out, "bob"))
	assert.Regexp(t, `bob\s+-\s+\S+\s+true`, out)

	require.NoError(t, h.app.Unlock(ctx, []string{"bob"}))

	h.out.Reset()
	require.NoError(t, h.app.Find(ctx, []string{"BOB"}))
	assert.Contains(t, h.out.String(), "locked=false")

	assert.True(t, errors.Is(h.app.Find(ctx, []string{"carol"}), common.ErrorNotFound))
	assert.True(t, errors.Is(h.app.Unlock(ctx, nil), errUsage))
}

func TestApp_Delete(t *testing.T) {
	h := newHarness(t, "alice\nnope\nalice\n", pw)
	h.register(t, "alice")
	ctx := context.Background()

	require.NoError(t, h.app.Login(ctx))

	require.NoError(t, h.app.Delete(ctx))
	assert.Contains(t, h.out.String(), "Cancelled")
	assert.Equal(t, 1, h.st.Count(ctx))

	require.NoError(t, h.app.Delete(ctx))
	assert.Zero(t, h.st.Count(ctx))
	assert.False(t, h.app.isLoggedIn())
}
