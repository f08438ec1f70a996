package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationFieldErrors mengubah validator.ValidationErrors menjadi map field → pesan.
func ValidationFieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		msg := fe.Tag()
		if p := fe.Param(); p != "" {
			msg += "=" + p
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// ValidateStruct: jalankan validator, balas 422 kalau gagal.
// Return (true, nil) kalau lolos.
func ValidateStruct(c *fiber.Ctx, v *validator.Validate, s any) (bool, error) {
	if err := v.Struct(s); err != nil {
		return false, JsonValidationError(c, ValidationFieldErrors(err))
	}
	return true, nil
}
