// Package auth is the identity token codec shared by every service. Tokens are
// HS256 JWTs carrying the user id as the subject plus role and name claims,
// valid for seven days. The signing secret is process-wide configuration
// injected at startup through NewKeys.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 7 * 24 * time.Hour

type ctxKey int

// ClaimsKey is the request-context key under which the authentication
// middleware stores the verified Claims.
const ClaimsKey ctxKey = 1

type Claims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// UserID returns the integer user id encoded in the subject claim.
func (c Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, apperr.New(apperr.Unauthenticated, "Invalid token subject")
	}
	return id, nil
}

type Keys struct {
	secret []byte
}

func NewKeys(secret string) (*Keys, error) {
	if secret == "" {
		return nil, apperr.New(apperr.Internal, "jwt secret is empty")
	}
	return &Keys{secret: []byte(secret)}, nil
}

// GenerateToken signs a token for the given user.
func (k *Keys) GenerateToken(userID int, role string, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(k.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// VerifyToken parses and validates a token string. Any failure (malformed,
// forged, expired, wrong algorithm) comes back as Unauthenticated.
func (k *Keys) VerifyToken(tokenStr string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Unauthenticated, "Unexpected signing method")
		}
		return k.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, apperr.New(apperr.Unauthenticated, "Invalid or expired token")
	}
	return claims, nil
}
