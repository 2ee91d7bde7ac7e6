package middleware

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"bricsbtc/internal/domain"
)

func TestGenerateAndParseJWT(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWT(userID, domain.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if token == "" {
		t.Fatal("token should not be empty")
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != domain.RoleUser {
		t.Errorf("Role = %s, want %s", claims.Role, domain.RoleUser)
	}
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(uuid.New(), domain.RoleUser, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ParseJWT(token); err == nil {
		t.Error("ParseJWT() should reject an expired token")
	}
}

func TestParseJWT_Garbage(t *testing.T) {
	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Error("ParseJWT() should reject a malformed token")
	}
}

func TestSetJWTSecretControlsSigning(t *testing.T) {
	defer SetJWTSecret("")

	SetJWTSecret("first-secret")
	token, err := GenerateJWT(uuid.New(), domain.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if _, err := ParseJWT(token); err != nil {
		t.Fatalf("ParseJWT() under same secret error = %v", err)
	}

	SetJWTSecret("second-secret")
	if _, err := ParseJWT(token); err == nil {
		t.Error("ParseJWT() should reject a token signed under a different secret")
	}
}
