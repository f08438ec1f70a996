package helper

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSignAndParseAccessToken(t *testing.T) {
	id := uuid.New()
	tok, exp, err := SignAccessToken("s3cret", id, "ADMIN", "a@b.c", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("exp in the past: %v", exp)
	}

	claims, err := ParseAccessToken("s3cret", tok)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	got, _ := claims.UserID()
	if got != id || claims.Role != "ADMIN" || claims.Email != "a@b.c" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	id := uuid.New()
	tok, _, _ := SignAccessToken("s3cret", id, "MEMBER", "", time.Now(), time.Hour)
	if _, err := ParseAccessToken("other", tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: err = %v", err)
	}

	old, _, _ := SignAccessToken("s3cret", id, "MEMBER", "", time.Now().Add(-3*time.Hour), time.Hour)
	if _, err := ParseAccessToken("s3cret", old); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired: err = %v", err)
	}

	if _, err := ParseAccessToken("s3cret", "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage: err = %v", err)
	}
}

func TestHmacHexStable(t *testing.T) {
	a := hmacHex("token", "k")
	if a != hmacHex("token", "k") || a == hmacHex("token", "k2") || len(a) != 64 {
		t.Fatalf("hmacHex = %q", a)
	}
}
