package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims are the claims carried by access tokens the external identity
// provider issues. This service only validates, it never mints tokens.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}
