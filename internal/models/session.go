package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the signed session cookie. The user row
// itself is reloaded per request so role and teacher link are never stale.
type SessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}
