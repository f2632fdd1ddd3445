package auth

import (
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"clubreport/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	token, err := CreateAccessToken("uid-123", "admin")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	parsed, err := jwt.ParseWithClaims(token, &model.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET_KEY")), nil
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	claims, ok := parsed.Claims.(*model.AccessClaims)
	if !ok || !parsed.Valid {
		t.Fatal("expected valid access claims")
	}
	if claims.UID != "uid-123" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAccessTokenWrongSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	token, err := CreateAccessToken("uid-123", "member")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	_, err = jwt.ParseWithClaims(token, &model.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	t.Setenv("JWT_REFRESH_SECRET_KEY", "refresh-secret")
	token, err := CreateRefreshToken("uid-123")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	hashed, err := HashRefreshToken(token)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := CompareRefreshToken(hashed, token); err != nil {
		t.Fatal("expected hashed token to match")
	}
	if err := CompareRefreshToken(hashed, token+"tampered"); err == nil {
		t.Fatal("expected tampered token to mismatch")
	}
}
