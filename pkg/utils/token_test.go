package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLoginTokenHashing(t *testing.T) {
	token, err := GenerateLoginToken()
	if err != nil {
		t.Fatalf("GenerateLoginToken: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex characters", len(token))
	}

	hash, err := HashToken(token)
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}
	if hash == token {
		t.Error("hash equals raw token")
	}

	if !CheckTokenHash(token, hash) {
		t.Error("valid token rejected")
	}
	if CheckTokenHash("wrong-token", hash) {
		t.Error("wrong token accepted")
	}
}

func TestGenerateLoginTokenIsRandom(t *testing.T) {
	a, _ := GenerateLoginToken()
	b, _ := GenerateLoginToken()
	if a == b {
		t.Error("two generated tokens are identical")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	access, err := m.GenerateAccessToken(userID, "dev@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := m.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID || claims.Email != "dev@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	refresh, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	got, err := m.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if got != userID {
		t.Errorf("refresh subject = %v, want %v", got, userID)
	}
}

func TestJWTRejectsForeignSignature(t *testing.T) {
	userID := uuid.New()
	token, err := NewJWTManager("secret-a", time.Hour, time.Hour).GenerateAccessToken(userID, "dev@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := NewJWTManager("secret-b", time.Hour, time.Hour).ValidateAccessToken(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, -time.Minute)
	token, err := m.GenerateAccessToken(uuid.New(), "dev@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expired token accepted")
	}
}
