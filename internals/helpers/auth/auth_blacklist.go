package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
)

/*
   =========================================================
   Token blacklist (logout)
   Yang disimpan HMAC(access_token) hex, bukan token mentah.
   =========================================================
*/

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// Add: simpan hash token sampai expiresAt.
func Add(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return nil
	}
	return db.WithContext(ctx).Exec(`
		INSERT INTO token_blacklist (token, expired_at, created_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (token) DO UPDATE
		SET expired_at = EXCLUDED.expired_at
	`, hmacHex(rawAccessToken, jwtSecret), expiresAt).Error
}

// IsBlacklisted: ada baris yang belum expired?
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	var exists bool
	err := db.WithContext(ctx).Raw(`
		SELECT EXISTS (
		  SELECT 1
		  FROM token_blacklist
		  WHERE token = ?
		    AND expired_at > NOW()
		)
	`, hmacHex(rawAccessToken, jwtSecret)).Scan(&exists).Error
	return exists, err
}

// PurgeExpired hard delete baris yang sudah lewat.
func PurgeExpired(ctx context.Context, db *gorm.DB, olderThan time.Time) (int64, error) {
	if db == nil {
		return 0, nil
	}
	res := db.WithContext(ctx).Exec(`DELETE FROM token_blacklist WHERE expired_at <= ?`, olderThan)
	return res.RowsAffected, res.Error
}
