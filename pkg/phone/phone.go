// Package phone normalizes and validates Chinese mobile numbers as they
// are typed into the login screen.
package phone

import (
	"regexp"
	"strings"
	"unicode"
)

// 11 digits starting with 1, e.g. 13800001111.
var mobileRegex = regexp.MustCompile(`^1\d{10}$`)

// Normalize strips whitespace, hyphens and a leading +86 country prefix,
// so inputs like " +86 138-0000-1111" become "13800001111". It never
// rejects anything; validation is a separate step.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, s)
	return strings.TrimPrefix(s, "+86")
}

// Valid reports whether p is an 11-digit mobile number. Call Normalize
// first; Valid does no stripping of its own.
func Valid(p string) bool {
	return mobileRegex.MatchString(p)
}
