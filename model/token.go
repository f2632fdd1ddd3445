package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type AccessClaims struct {
	UID  string `json:"uid"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenRecord is the refresh-token bookkeeping document stored under
// refreshTokens/{uid}. RefreshToken holds a hash, never the token itself.
type TokenRecord struct {
	UID          string `firestore:"uid"`
	RefreshToken string `firestore:"refreshToken"`
	CreatedAt    int64  `firestore:"createdAt"`
	Revoked      bool   `firestore:"revoked"`
	ExpiresIn    int64  `firestore:"expiresIn"`
}
