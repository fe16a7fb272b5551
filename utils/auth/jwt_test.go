package auth

import (
	"testing"
	"time"
)

func testManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-do-not-use",
		Expiry:        expiry,
		RefreshExpiry: 2 * expiry,
		Issuer:        "collage-api-test",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager(time.Minute)

	token, err := m.GenerateAccessToken(42, "admin@example.com", "ADMIN")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.UserType != "ADMIN" {
		t.Errorf("UserType = %q", claims.UserType)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
}

func TestRefreshTokenCarriesRefreshType(t *testing.T) {
	m := testManager(time.Minute)

	token, err := m.GenerateRefreshToken(7, "user@example.com", "GUEST")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", claims.TokenType)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.GenerateAccessToken(1, "a@b.c", "GUEST")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	m := testManager(time.Minute)
	other := NewJWTManager(JWTConfig{
		Secret: "different-secret",
		Expiry: time.Minute,
		Issuer: "collage-api-test",
	})

	token, err := other.GenerateAccessToken(1, "a@b.c", "GUEST")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifyPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}
	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Error("expected mismatched password to fail")
	}
}

func TestPasswordTooShort(t *testing.T) {
	if _, err := HashPassword("short"); err != ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}
