package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Errorf("hash %q is not bcrypt cost 10", hash)
	}

	hash2, _ := HashPassword("hunter22")
	if hash == hash2 {
		t.Error("same password should hash differently (random salt)")
	}
}

func TestComparePassword(t *testing.T) {
	hash, _ := HashPassword("hunter22")

	if !ComparePassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if ComparePassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
	if ComparePassword(hash, "") {
		t.Error("empty password accepted")
	}
	if ComparePassword("", "hunter22") {
		t.Error("empty hash accepted")
	}
	if ComparePassword("not-a-hash", "hunter22") {
		t.Error("malformed hash accepted")
	}
}
