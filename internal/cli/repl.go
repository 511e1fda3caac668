package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	List(ctx context.Context) error
	Find(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Email(ctx context.Context, args []string) error
	Phone(ctx context.Context, args []string) error
	TwoFactor(ctx context.Context, args []string) error
	Roles(ctx context.Context, args []string) error
	Claims(ctx context.Context, args []string) error
	Logins(ctx context.Context, args []string) error
	Codes(ctx context.Context, args []string) error
	Redeem(ctx context.Context, args []string) error
	AuthKey(ctx context.Context, args []string) error
	Unlock(ctx context.Context, args []string) error
	Delete(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the identity console.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to the handler. The loop exits on EOF, on ctx
// cancellation (checked between commands) or when the user types "exit" or
// "quit".
//
//	Not logged in:
//	  help, register, login, list, find <name>, unlock <name>, exit
//
//	Logged in, additionally:
//	  whoami, passwd, rename <name>, email <addr>|confirm, phone <num>|confirm,
//	  2fa on|off, roles [add|remove <role>], claims [add <type> <value>|remove <type>],
//	  logins [add <provider> <key> [name]|remove <provider> <key>],
//	  codes [count], redeem <code>, authkey [reset], delete, logout
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("id %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: whoami, passwd, rename, email, phone, 2fa, roles, claims, logins, codes, redeem, authkey, delete, logout, (l)ist, find, unlock, exit")
		} else {
			printlnFn("Available commands: register, login, (l)ist, find, unlock, exit")
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "l", "list":
		return a.List(ctx)
	case "find":
		return a.Find(ctx, args)
	case "unlock":
		return a.Unlock(ctx, args)
	}

	if !a.isLoggedIn() {
		if _, known := sessionCommands[cmd]; known {
			printlnFn("Please log in first")
			return nil
		}
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "passwd":
		return a.ChangePassword(ctx)
	case "rename":
		return a.Rename(ctx, args)
	case "email":
		return a.Email(ctx, args)
	case "phone":
		return a.Phone(ctx, args)
	case "2fa":
		return a.TwoFactor(ctx, args)
	case "roles":
		return a.Roles(ctx, args)
	case "claims":
		return a.Claims(ctx, args)
	case "logins":
		return a.Logins(ctx, args)
	case "codes":
		return a.Codes(ctx, args)
	case "redeem":
		return a.Redeem(ctx, args)
	case "authkey":
		return a.AuthKey(ctx, args)
	case "delete":
		return a.Delete(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

var sessionCommands = map[string]struct{}{
	"logout": {}, "whoami": {}, "passwd": {}, "rename": {}, "email": {}, "phone": {},
	"2fa": {}, "roles": {}, "claims": {}, "logins": {}, "codes": {}, "redeem": {},
	"authkey": {}, "delete": {},
}
