// Package auth verifies access tokens issued by the external identity service
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mediacatalog/backend/internal/models"
)

// TokenValidator validates HS256 access tokens and resolves the caller identity
type TokenValidator struct {
	secret    string
	privilege *PrivilegeResolver
}

// NewTokenValidator creates a new token validator
func NewTokenValidator(secret string, privilege *PrivilegeResolver) *TokenValidator {
	return &TokenValidator{
		secret:    secret,
		privilege: privilege,
	}
}

// ValidateAccessToken validates an access token and returns the caller identity
func (tv *TokenValidator) ValidateAccessToken(tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tv.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	// Check token type
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return nil, fmt.Errorf("token is not an access token")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, fmt.Errorf("user_id not found in token")
	}

	// Role and email are optional claims
	role := 0
	if r, ok := claims["role"].(float64); ok {
		role = int(r)
	}
	email, _ := claims["email"].(string)

	identity := &models.Identity{
		ID:    int(userID),
		Email: email,
	}
	identity.CanModerate = tv.privilege.CanModerate(role, email)

	return identity, nil
}
