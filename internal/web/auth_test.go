package web

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordMatches_Plain(t *testing.T) {
	if !passwordMatches("hunter2", "hunter2") {
		t.Error("plain password should match itself")
	}
	if passwordMatches("hunter2", "wrong") {
		t.Error("wrong plain password should not match")
	}
}

func TestPasswordMatches_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if !passwordMatches(string(hash), "hunter2") {
		t.Error("bcrypt hash should match its password")
	}
	if passwordMatches(string(hash), "wrong") {
		t.Error("bcrypt hash should reject a wrong password")
	}
}

func TestAuthEnabled(t *testing.T) {
	t.Setenv("DASHBOARD_USERNAME", "")
	t.Setenv("DASHBOARD_PASSWORD", "")
	if authEnabled() {
		t.Error("auth should be disabled without credentials")
	}

	t.Setenv("DASHBOARD_USERNAME", "admin")
	t.Setenv("DASHBOARD_PASSWORD", "secret")
	if !authEnabled() {
		t.Error("auth should be enabled with both credentials set")
	}
}
