package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const AccessTTLDefault = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims access token. Role hanya informasi untuk client;
// guard selalu membaca role terbaru dari DB.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (c Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Subject))
}

// SignAccessToken HS256
func SignAccessToken(secret string, memberID uuid.UUID, role, email string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, fmt.Errorf("JWT_SECRET belum diset")
	}
	if ttl <= 0 {
		ttl = AccessTTLDefault
	}
	exp := now.Add(ttl)
	claims := Claims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// ParseAccessToken verifikasi signature + exp (leeway 30 detik).
func ParseAccessToken(secret, raw string) (*Claims, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("JWT_SECRET belum diset")
	}
	claims := &Claims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time.Add(30*time.Second)) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, fmt.Errorf("%w: subject", ErrInvalidToken)
	}
	return claims, nil
}

// ExpiryOf exp token tanpa verifikasi ulang (dipakai saat logout).
func ExpiryOf(secret, raw string) (time.Time, bool) {
	c, err := ParseAccessToken(secret, raw)
	if err != nil || c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}
