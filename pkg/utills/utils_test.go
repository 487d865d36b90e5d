package utils

import (
	"strings"
	"testing"
)

func TestValidUsername(t *testing.T) {
	cases := map[string]bool{
		"ab":                              false,
		"abc":                             true,
		"  abc  ":                         true,
		"":                                false,
		strings.Repeat("x", MaxUsernameLen):     true,
		strings.Repeat("x", MaxUsernameLen + 1): false,
	}
	for in, want := range cases {
		if got := ValidUsername(in); got != want {
			t.Errorf("ValidUsername(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	if ValidPassword("12345") {
		t.Error("five characters accepted")
	}
	if !ValidPassword("123456") {
		t.Error("six characters rejected")
	}
}
