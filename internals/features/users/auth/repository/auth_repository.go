package repository

import (
	"context"
	"time"

	helpersAuth "clubfund_backend/internals/helpers/auth"

	"gorm.io/gorm"
)

// TokenRepository token_blacklist (logout + cleanup)
type TokenRepository struct {
	DB     *gorm.DB
	Secret string
}

func NewTokenRepository(db *gorm.DB, secret string) *TokenRepository {
	return &TokenRepository{DB: db, Secret: secret}
}

func (r *TokenRepository) Revoke(ctx context.Context, rawToken string, expiresAt time.Time) error {
	return helpersAuth.Add(ctx, r.DB, rawToken, r.Secret, expiresAt)
}

func (r *TokenRepository) IsRevoked(ctx context.Context, rawToken string) (bool, error) {
	return helpersAuth.IsBlacklisted(ctx, r.DB, rawToken, r.Secret)
}

// CleanupExpired hapus token yang exp-nya sebelum olderThan
func (r *TokenRepository) CleanupExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	return helpersAuth.PurgeExpired(ctx, r.DB, olderThan)
}
