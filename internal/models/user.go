// Package models holds the identity records shared by the store, the service
// layer and the console.
package models

import "time"

// User is one identity principal.
//
// String fields that are nullable in the identity contract (PasswordHash,
// SecurityStamp, ConcurrencyStamp) use "" for "not set". ConcurrencyStamp is
// informational: nothing compares it before overwriting a record.
type User struct {
	ID                   string
	UserName             string
	NormalizedUserName   string
	Email                string
	NormalizedEmail      string
	EmailConfirmed       bool
	PasswordHash         string
	SecurityStamp        string
	ConcurrencyStamp     string
	PhoneNumber          string
	PhoneNumberConfirmed bool
	TwoFactorEnabled     bool
	LockoutEnabled       bool
	LockoutEnd           *time.Time
	AccessFailedCount    int
}

// Clone returns a deep copy of u. A nil receiver yields nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LockoutEnd != nil {
		end := *u.LockoutEnd
		c.LockoutEnd = &end
	}
	return &c
}
