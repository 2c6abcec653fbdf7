package model

import "github.com/golang-jwt/jwt/v5"

type TokenResponse struct {
	UserID       string `json:"userId"`
	RefreshToken string `json:"refreshToken"`
	CreatedAt    int64  `json:"createdAt"` // creation time in seconds
	Revoked      bool   `json:"revoked"`
	ExpiresIn    int64  `json:"expiresIn"` // expiration in seconds
}

type AccessClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// VerifyClaims is carried by the signed link in the verification e-mail.
type VerifyClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
