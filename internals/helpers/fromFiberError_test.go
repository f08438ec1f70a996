package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/constants"
)

func TestJsonServiceError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"wrapped not pending", fmt.Errorf("contribution x: %w", constants.ErrNotPending), fiber.StatusConflict, "NOT_PENDING", "Yêu cầu đã được xử lý"},
		{"missing reason", constants.ErrMissingReason, fiber.StatusUnprocessableEntity, "MISSING_REASON", "Vui lòng nhập lý do từ chối"},
		{"invalid range", fmt.Errorf("weeks=9: %w", constants.ErrInvalidRange), fiber.StatusUnprocessableEntity, "INVALID_RANGE", "Số tuần phải từ 1 đến 4"},
		{"already submitted", constants.ErrAlreadySubmitted, fiber.StatusConflict, "ALREADY_SUBMITTED", "Tuần này đã được gửi"},
		{"locked", constants.ErrLocked, fiber.StatusConflict, "LOCKED", "Kỳ này đã khóa sổ, không thể thay đổi"},
		{"not found", constants.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Không tìm thấy dữ liệu"},
		{"unauthorized", constants.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "Vui lòng đăng nhập trước"},
		{"inactive", constants.ErrInactiveMember, fiber.StatusForbidden, "INACTIVE_MEMBER", "Tài khoản chưa được kích hoạt"},
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "teko"), fiber.StatusTeapot, "", "teko"},
		{"unknown", errors.New("pq: connection reset"), fiber.StatusInternalServerError, "INTERNAL_ERROR", "Đã xảy ra lỗi máy chủ"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return JsonServiceError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			var body ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success {
				t.Fatal("success = true")
			}
			if tc.code != "" && body.ErrorCode != tc.code {
				t.Fatalf("error_code = %q, want %q", body.ErrorCode, tc.code)
			}
			if body.Message != tc.message {
				t.Fatalf("message = %q, want %q", body.Message, tc.message)
			}
		})
	}
}

func TestJsonServiceErrorHidesInternalMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return JsonServiceError(c, errors.New("password=rahasia host=db"))
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Đã xảy ra lỗi máy chủ" {
		t.Fatalf("message bocor: %q", body.Message)
	}
}

func TestJsonErrorDefaultMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return JsonError(c, 0, "  ") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError || body.Message != "Đã xảy ra lỗi máy chủ" || body.ErrorCode != "INTERNAL_ERROR" {
		t.Fatalf("got %d %+v", resp.StatusCode, body)
	}
}
