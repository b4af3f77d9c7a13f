package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/princeprakhar/partnerhub/internal/models"
	"github.com/princeprakhar/partnerhub/internal/types"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	Type       string `json:"token_type"`
	jwt.RegisteredClaims
}

func generateToken(user models.User, typ TokenType, ttl time.Duration, jwtSecret string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		Type:       string(typ),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.Username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// GenerateTokenPair issues a short-lived access token (15 minutes) and a
// refresh token (7 days).
func GenerateTokenPair(user models.User, jwtSecret string) (*types.TokenPair, error) {
	access, err := generateToken(user, AccessToken, accessTokenTTL, jwtSecret)
	if err != nil {
		return nil, err
	}
	refresh, err := generateToken(user, RefreshToken, refreshTokenTTL, jwtSecret)
	if err != nil {
		return nil, err
	}
	return &types.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateToken verifies signature and expiry and that the token is of the
// wanted type.
func ValidateToken(tokenString string, want TokenType, jwtSecret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != string(want) {
		return nil, errors.New("wrong token type")
	}
	return claims, nil
}

// GenerateRandomString returns length random bytes hex encoded.
func GenerateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
