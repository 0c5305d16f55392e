// Package auth implements the optional access-code session. When an access
// code is configured, the companion exchanges it once for a signed token
// cookie; without one the server runs open for localhost use.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"imperium-server/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	jwt.RegisteredClaims
}

// VerifyAccessCode checks a presented code against the configured one.
func VerifyAccessCode(code string) bool {
	cfg := config.GlobalConfig.Auth
	if cfg.AccessCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(cfg.AccessCode)) == 1
}

// GenerateToken issues a session token for a verified access code.
func GenerateToken() (string, error) {
	cfg := config.GlobalConfig.Auth
	if cfg.JWTSecret == "" {
		return "", fmt.Errorf("cannot generate token: JWT secret is not configured")
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   "companion",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ValidateToken parses and verifies a session token.
func ValidateToken(tokenString string) (*Claims, error) {
	cfg := config.GlobalConfig.Auth
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("cannot validate token: JWT secret is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
