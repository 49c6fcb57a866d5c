package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("identity: no bearer token")
	ErrInvalidToken = errors.New("identity: invalid token")
)

// Principal is the authenticated subject attached to a request. A zero
// Principal is an anonymous visitor, which public endpoints accept.
type Principal struct {
	UserID string
	Email  string
}

func (p Principal) IsAnonymous() bool {
	return strings.TrimSpace(p.UserID) == ""
}

// Verifier validates HS256 bearer tokens and extracts the principal.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret string, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// FromRequest resolves the bearer token on a request. A missing
// Authorization header yields ErrNoToken so callers can decide whether
// anonymous access is acceptable; a present but bad token always fails.
func (v *Verifier) FromRequest(r *http.Request) (Principal, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return Principal{}, ErrNoToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Principal{}, ErrInvalidToken
	}
	return v.Verify(strings.TrimSpace(parts[1]))
}

func (v *Verifier) Verify(tokenString string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return Principal{}, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Principal{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return Principal{
		UserID: claims.Subject,
		Email:  strings.ToLower(strings.TrimSpace(claims.Email)),
	}, nil
}

// Issuer mints access tokens. The API itself only verifies; minting
// lives beside it for local setups and tests.
type Issuer struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

func NewIssuer(secret string, issuer string, accessTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), issuer: issuer, accessTTL: accessTTL}
}

func (i *Issuer) Mint(userID string, email string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
