// Package policy validates user-supplied credentials: email format and
// password strength.
package policy

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// SpecialCharacters lists the characters that satisfy the special-character rule.
const SpecialCharacters = `!@#$%^&*(),.?":{}|<>`

const (
	ReasonTooShort  = "Password must be at least 8 characters long"
	ReasonUppercase = "Password must contain at least one uppercase letter"
	ReasonLowercase = "Password must contain at least one lowercase letter"
	ReasonDigit     = "Password must contain at least one number"
	ReasonSpecial   = "Password must contain at least one special character"
	ReasonTooLong   = "Password must be at most 72 bytes long"
	ReasonOK        = "Password meets all requirements"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether email looks like local@domain.tld.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type rule struct {
	reason string
	ok     func(string) bool
}

func containsAny(pred func(rune) bool) func(string) bool {
	return func(s string) bool { return strings.IndexFunc(s, pred) >= 0 }
}

// Rules run in order; the first failing rule decides the reason.
var rules = []rule{
	{ReasonTooShort, func(s string) bool { return utf8.RuneCountInString(s) >= MinPasswordLength }},
	{ReasonUppercase, containsAny(func(r rune) bool { return r >= 'A' && r <= 'Z' })},
	{ReasonLowercase, containsAny(func(r rune) bool { return r >= 'a' && r <= 'z' })},
	{ReasonDigit, containsAny(func(r rune) bool { return r >= '0' && r <= '9' })},
	{ReasonSpecial, func(s string) bool { return strings.ContainsAny(s, SpecialCharacters) }},
}

// ValidatePassword checks password against the strength rules and returns
// whether it passed along with a human-readable reason.
func ValidatePassword(password string) (bool, string) {
	for _, r := range rules {
		if !r.ok(password) {
			return false, r.reason
		}
	}
	return true, ReasonOK
}
