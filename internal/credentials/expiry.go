package credentials

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessExpiry reads the exp claim of a JWT access token without verifying its
// signature. ok is false when the token is not a JWT or carries no expiry.
func AccessExpiry(token string) (exp time.Time, ok bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return time.Time{}, false
	}
	return expiresAt.Time, true
}
