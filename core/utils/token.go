package utils

import (
	"fmt"
	"strings"
	"time"

	"agenda-api/core/config"
	"agenda-api/core/constants"
	"agenda-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
)

type TokenClaims struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Scope    string `json:"scope"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	cfg, ok := config.GetSafe()
	if !ok || cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret not configured")
	}
	return []byte(cfg.JWT.Secret), nil
}

// GenerateToken issues a signed JWT for the given user and scope. Access
// and refresh scopes get their respective lifetimes.
func GenerateToken(userID int64, email, username, scope string) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	lifetime := constants.AccessTokenDuration
	if scope == constants.ScopeTokenRefresh {
		lifetime = constants.RefreshTokenDuration
	}

	now := time.Now()
	claims := TokenClaims{
		UserID:   userID,
		Email:    email,
		Username: username,
		Scope:    scope,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			Issuer:    "agenda-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAndParseToken verifies the signature and expiry and returns the
// embedded claims.
func ValidateAndParseToken(tokenString string) (*TokenClaims, *errors.AppError) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "jwt secret not configured", err)
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", err)
	}
	if !token.Valid {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", nil)
	}

	return claims, nil
}

// GetTokenFromHeader extracts the bearer token from an Authorization header.
func GetTokenFromHeader(header string) (string, *errors.AppError) {
	if header == "" {
		return "", errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", nil)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.NewAppError(errors.ErrInvalidTokenFormat, "authorization header must be 'Bearer {token}'", nil)
	}

	return parts[1], nil
}
