package models

import (
	"strings"
	"testing"
)

func TestSetPasswordAndCheckPassword(t *testing.T) {
	var u User
	if err := u.SetPassword("secret1"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret1" {
		t.Fatalf("password stored in the clear or empty: %q", u.PasswordHash)
	}
	if !strings.Contains(u.PasswordHash, ".") {
		t.Fatalf("expected key.salt format, got %q", u.PasswordHash)
	}
	if !u.CheckPassword("secret1") {
		t.Fatal("correct password rejected")
	}
	if u.CheckPassword("secret2") {
		t.Fatal("wrong password accepted")
	}
	if u.CheckPassword("") {
		t.Fatal("empty password accepted")
	}
}

func TestSetPasswordSaltsAreUnique(t *testing.T) {
	var a, b User
	if err := a.SetPassword("same-password"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetPassword("same-password"); err != nil {
		t.Fatal(err)
	}
	if a.PasswordHash == b.PasswordHash {
		t.Fatal("two hashes of the same password are identical; salt is not random")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	u := User{PasswordHash: "not-a-valid-hash"}
	if u.CheckPassword("anything") {
		t.Fatal("malformed hash accepted a password")
	}
	u.PasswordHash = "zzzz.zzzz"
	if u.CheckPassword("anything") {
		t.Fatal("non-hex hash accepted a password")
	}
}
