// Package cli provides the interactive identity console.
//
// It drives a UserService through a REPL: register and sign in, inspect and
// edit the signed-in user's profile, roles, claims and external logins,
// manage recovery codes and the authenticator key, and run administrative
// commands (list, find, unlock) against any user.
//
// The session is an access token. Every command re-validates it, so a change
// that rotates the security stamp from elsewhere ends the session; changes
// made from this session re-issue the token.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits,
// input ends or ctx is cancelled. See runREPL for the command list.
package cli
