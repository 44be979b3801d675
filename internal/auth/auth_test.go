package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	k, err := NewKeys("test-secret")
	if err != nil {
		t.Fatalf("NewKeys: %v", err)
	}

	token, err := k.GenerateToken(42, RoleCustomer, "Soumya")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := k.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "42" {
		t.Errorf("subject = %q, want %q", claims.Subject, "42")
	}
	if claims.Role != RoleCustomer {
		t.Errorf("role = %q, want %q", claims.Role, RoleCustomer)
	}
	if claims.Name != "Soumya" {
		t.Errorf("name = %q, want %q", claims.Name, "Soumya")
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Errorf("UserID() = %d, %v, want 42, nil", id, err)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	k1, _ := NewKeys("secret-one")
	k2, _ := NewKeys("secret-two")

	token, err := k1.GenerateToken(1, RoleAdmin, "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := k2.VerifyToken(token); apperr.KindOf(err) != apperr.Unauthenticated {
		t.Errorf("expected Unauthenticated for forged token, got %v", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	k, _ := NewKeys("test-secret")

	claims := Claims{
		Role: RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := k.VerifyToken(token); apperr.KindOf(err) != apperr.Unauthenticated {
		t.Errorf("expected Unauthenticated for expired token, got %v", err)
	}
}

func TestVerifyTokenRejectsMalformed(t *testing.T) {
	k, _ := NewKeys("test-secret")

	for _, tok := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 100)} {
		if _, err := k.VerifyToken(tok); apperr.KindOf(err) != apperr.Unauthenticated {
			t.Errorf("token %q: expected Unauthenticated, got %v", tok, err)
		}
	}
}

func TestVerifyTokenRejectsNoneAlgorithm(t *testing.T) {
	k, _ := NewKeys("test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := k.VerifyToken(token); err == nil {
		t.Error("expected error for alg=none token")
	}
}

func TestNewKeysEmptySecret(t *testing.T) {
	if _, err := NewKeys(""); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestUserIDNonNumericSubject(t *testing.T) {
	c := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	if _, err := c.UserID(); err == nil {
		t.Error("expected error for non-numeric subject")
	}
	var e *apperr.Error
	_, err := c.UserID()
	if !errors.As(err, &e) || e.Kind != apperr.Unauthenticated {
		t.Errorf("expected Unauthenticated, got %v", err)
	}
}
