package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/bothellselect/select-client/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken            = errors.New("session: no token")
	ErrTokenMalformed     = errors.New("session: malformed token")
	ErrTokenMissingExpiry = errors.New("session: token has no expiry")
	ErrTokenExpired       = errors.New("session: token expired")
)

var parser = jwt.NewParser()

// DecodeToken reads the claims of a bearer token without verifying its signature.
// The client never holds the signing key; the backend rejects forged tokens.
func DecodeToken(token string) (*models.TokenClaims, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims := &models.TokenClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	return claims, nil
}

// CheckExpiry fails with ErrTokenMissingExpiry or ErrTokenExpired. A token is
// expired once now reaches exp.
func CheckExpiry(claims *models.TokenClaims, now time.Time) error {
	if claims.ExpiresAt == nil {
		return ErrTokenMissingExpiry
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}

// ValidateToken decodes token and checks its expiry against now.
func ValidateToken(token string, now time.Time) (*models.TokenClaims, error) {
	claims, err := DecodeToken(token)
	if err != nil {
		return nil, err
	}
	if err := CheckExpiry(claims, now); err != nil {
		return nil, err
	}
	return claims, nil
}
