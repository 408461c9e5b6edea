package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	accountModel "campusfee_backend/internals/features/users/user/model"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	acc := accountModel.AccountModel{ID: uuid.New(), Role: accountModel.RoleStudent}

	tok, exp, err := svc.Issue(acc)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}

	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != acc.ID || claims.Role != accountModel.RoleStudent {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestTokenRejects(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	acc := accountModel.AccountModel{ID: uuid.New(), Role: accountModel.RoleAdmin}

	other := NewTokenService("other-secret", time.Hour)
	foreign, _, err := other.Issue(acc)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Parse(foreign); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("foreign signature: got %v", err)
	}

	expired := NewTokenService("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(acc)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Parse(old); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expired: got %v", err)
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ": "refresh",
		"sub": acc.ID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Parse(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("wrong typ: got %v", err)
	}

	if _, err := svc.Parse(""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("empty: got %v", err)
	}
}
