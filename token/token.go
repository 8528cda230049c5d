// Package token mints and verifies the app's own session tokens. Tokens are
// HS256 JWTs carrying the local user id; a typ claim separates access tokens
// from refresh tokens so one can never stand in for the other.
package token

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the signed payload of an issued token.
type Claims struct {
	Email string `json:"email,omitempty"`
	Typ   string `json:"typ"`
	jwt.RegisteredClaims
}

// ErrInvalidToken covers every validation failure: bad signature, expiry,
// malformed token, wrong typ, wrong issuer. Callers treat them all as a
// single unauthorized outcome; the message is for logs only.
var ErrInvalidToken = errors.New("invalid token")

// IssueAccess mints an access token for the user. email may be empty.
func IssueAccess(secret, issuer, userID, email string, ttl time.Duration) (string, error) {
	return issue(secret, issuer, userID, email, TypeAccess, ttl)
}

// IssueRefresh mints a refresh token. Refresh tokens never carry an email.
func IssueRefresh(secret, issuer, userID string, ttl time.Duration) (string, error) {
	return issue(secret, issuer, userID, "", TypeRefresh, ttl)
}

func issue(secret, issuer, userID, email, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Typ:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("jwt signing failed: %w", err)
	}
	return signed, nil
}

// ValidateAccess verifies signature and expiry, then requires typ=access and
// the expected issuer. The returned claims are trusted for downstream use.
func ValidateAccess(tokenStr, secret, expectedIssuer string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Typ != TypeAccess {
		return nil, fmt.Errorf("%w: wrong token type %q", ErrInvalidToken, claims.Typ)
	}
	if claims.Issuer != expectedIssuer {
		return nil, fmt.Errorf("%w: wrong issuer", ErrInvalidToken)
	}
	return claims, nil
}
