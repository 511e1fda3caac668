// Package normalizer produces the canonical lookup forms of user names and
// e-mail addresses.
//
// Normalize is what gets stored in NormalizedUserName / NormalizedEmail
// (locale-independent upper case). Key folds a string for case-insensitive map keys;
// two names that differ only by case share a Key, and Key(s) equals
// Key(Normalize(s)).
package normalizer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers keep per-call state, so a fresh one is built for every call.

// Normalize returns the locale-independent upper-case form of s.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return cases.Upper(language.Und).String(s)
}

// NormalizeName is Normalize for user names.
func NormalizeName(name string) string { return Normalize(name) }

// NormalizeEmail is Normalize for e-mail addresses.
func NormalizeEmail(email string) string { return Normalize(email) }

// Key returns the case-folded form of Normalize(s). Folding alone is not
// enough: for some runes (dotless i, Cherokee lower case) Fold(s) and
// Fold(Upper(s)) differ.
func Key(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(Normalize(s))
}
