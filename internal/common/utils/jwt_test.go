package utils

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	claims := NewJWTClaims(42, "a@b.com", "민지", "access", "test", time.Now(), time.Hour)

	token, err := GenerateJWT(claims, "secret")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := ValidateJWT(token, "secret")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.UserID != 42 || got.Subject != "42" || got.Type != "access" || got.Name != "민지" {
		t.Errorf("Expected claims to round trip, got %+v", got)
	}
	if got.ID == "" {
		t.Error("Expected a jti")
	}
}

func TestValidateJWTRejects(t *testing.T) {
	valid, _ := GenerateJWT(NewJWTClaims(1, "", "", "access", "test", time.Now(), time.Hour), "secret")
	expired, _ := GenerateJWT(NewJWTClaims(1, "", "", "access", "test", time.Now().Add(-2*time.Hour), time.Hour), "secret")

	mismatched := NewJWTClaims(1, "", "", "access", "test", time.Now(), time.Hour)
	mismatched.Subject = "2"
	forged, _ := GenerateJWT(mismatched, "secret")

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"expired", expired, "secret"},
		{"subject mismatch", forged, "secret"},
		{"garbage", "not.a.token", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateJWT(tt.token, tt.secret); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
