package helper

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	hashed, err := h.Hash("student123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "student123" {
		t.Fatal("password stored in plain text")
	}
	if err := CheckPasswordHash(hashed, "student123"); err != nil {
		t.Fatalf("expected match: %v", err)
	}
	if err := CheckPasswordHash(hashed, "wrong"); err == nil {
		t.Fatal("expected mismatch")
	}
}
