package utils

import "strings"

const (
	MinUsernameLen = 3
	MaxUsernameLen = 80
	MinPasswordLen = 6
)

// ValidUsername reports whether s is an acceptable username (length only;
// any printable characters are allowed).
func ValidUsername(s string) bool {
	n := len(strings.TrimSpace(s))
	return n >= MinUsernameLen && n <= MaxUsernameLen
}

// ValidPassword reports whether s is an acceptable password.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLen
}
