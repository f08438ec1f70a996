package helpers

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	reLetter = regexp.MustCompile(`[A-Za-z]`)
	reNumber = regexp.MustCompile(`[0-9]`)
	reEmail  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func isAlphaNumeric(s string) bool {
	return reLetter.MatchString(s) && reNumber.MatchString(s)
}

// Validasi Email (regex simple)
func IsValidEmail(email string) bool {
	return reEmail.MatchString(email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword minimal 8 karakter, ada huruf & angka
func ValidatePassword(p string) error {
	if len(p) < 8 {
		return errors.New("password minimal 8 karakter")
	}
	if !isAlphaNumeric(p) {
		return errors.New("password harus mengandung huruf dan angka")
	}
	return nil
}

func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, p string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(p))
}
