// internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the identity the identity provider vouches for. The core
// never sees passwords; it trusts a signed session token carrying this.
type Principal struct {
	ExternalID    string
	Email         string
	EmailVerified bool
	Name          string
}

type TokenManager struct {
	secret       []byte
	issuer       string
	expiryPeriod time.Duration
}

func NewTokenManager(secret, issuer string, expiryPeriod time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		issuer:       issuer,
		expiryPeriod: expiryPeriod,
	}
}

type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Generate signs a session token for p. The identity adapter and the
// development "token issue" command use it.
func (tm *TokenManager) Generate(p Principal) (string, error) {
	if p.ExternalID == "" {
		return "", errors.New("principal has no external id")
	}
	now := time.Now()
	claims := Claims{
		Email:         p.Email,
		EmailVerified: p.EmailVerified,
		Name:          p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ExternalID,
			Issuer:    tm.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate verifies the token signature, expiry and issuer and returns the
// principal it carries.
func (tm *TokenManager) Validate(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithIssuer(tm.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &Principal{
		ExternalID:    claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
	}, nil
}
