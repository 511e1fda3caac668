package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failOn   string

	calls []string
	args  map[string][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	if name == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error         { return f.record("whoami", nil) }
func (f *fakeExec) ChangePassword(ctx context.Context) error { return f.record("passwd", nil) }
func (f *fakeExec) List(ctx context.Context) error           { return f.record("list", nil) }
func (f *fakeExec) Find(ctx context.Context, args []string) error {
	return f.record("find", args)
}
func (f *fakeExec) Rename(ctx context.Context, args []string) error {
	return f.record("rename", args)
}
func (f *fakeExec) Email(ctx context.Context, args []string) error {
	return f.record("email", args)
}
func (f *fakeExec) Phone(ctx context.Context, args []string) error {
	return f.record("phone", args)
}
func (f *fakeExec) TwoFactor(ctx context.Context, args []string) error {
	return f.record("2fa", args)
}
func (f *fakeExec) Roles(ctx context.Context, args []string) error {
	return f.record("roles", args)
}
func (f *fakeExec) Claims(ctx context.Context, args []string) error {
	return f.record("claims", args)
}
func (f *fakeExec) Logins(ctx context.Context, args []string) error {
	return f.record("logins", args)
}
func (f *fakeExec) Codes(ctx context.Context, args []string) error {
	return f.record("codes", args)
}
func (f *fakeExec) Redeem(ctx context.Context, args []string) error {
	return f.record("redeem", args)
}
func (f *fakeExec) AuthKey(ctx context.Context, args []string) error {
	return f.record("authkey", args)
}
func (f *fakeExec) Unlock(ctx context.Context, args []string) error {
	return f.record("unlock", args)
}
func (f *fakeExec) Delete(ctx context.Context) error { return f.record("delete", nil) }

// capturePrintln swaps printlnFn for a recorder.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrintln(t)

	input := rdr("help\nwhoami\nlogin\nhelp\nroles add admin\nclaims\nl\nfind bob\ncodes count\nlogout\nexit\nlist\n")
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "status" }, input)

	assert.Equal(t, []string{"login", "roles", "claims", "list", "find", "codes", "logout"}, exec.calls)
	assert.Equal(t, []string{"add", "admin"}, exec.args["roles"])
	assert.Equal(t, []string{"bob"}, exec.args["find"])
	assert.Equal(t, []string{"count"}, exec.args["codes"])
}

func TestRunREPL_SessionCommandsNeedLogin(t *testing.T) {
	lines := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, rdr("rename x\nfoobar\n"))

	assert.Contains(t, *lines, "Please log in first")
	assert.Contains(t, *lines, "Unknown command:foobar")
}

func TestRunREPL_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, failOn: "whoami"}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("whoami\nlist"))

	assert.Equal(t, []string{"whoami", "list"}, exec.calls, "last line without newline still runs")
	assert.Contains(t, *lines, "error:boom")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("login\n"))

	assert.Empty(t, exec.calls)
}

func TestRunREPL_QuitAndBlankLines(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("\n   \nquit\nwhoami\n"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Bye!")
}
