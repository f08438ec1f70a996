package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/constants"
)

// FromFiberError mengubah error hasil Transaction (biasanya *fiber.Error)
// menjadi response JSON konsisten via JsonError.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonServiceError(c, err)
}

type serviceErrorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var serviceErrorMappings = []serviceErrorMapping{
	{constants.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "Vui lòng đăng nhập trước"},
	{constants.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "Không có quyền truy cập"},
	{constants.ErrInactiveMember, fiber.StatusForbidden, "INACTIVE_MEMBER", "Tài khoản chưa được kích hoạt"},
	{constants.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Không tìm thấy dữ liệu"},
	{constants.ErrAlreadySubmitted, fiber.StatusConflict, "ALREADY_SUBMITTED", "Tuần này đã được gửi"},
	{constants.ErrMissingReason, fiber.StatusUnprocessableEntity, "MISSING_REASON", "Vui lòng nhập lý do từ chối"},
	{constants.ErrInvalidRange, fiber.StatusUnprocessableEntity, "INVALID_RANGE", "Số tuần phải từ 1 đến 4"},
	{constants.ErrNotPending, fiber.StatusConflict, "NOT_PENDING", "Yêu cầu đã được xử lý"},
	{constants.ErrLocked, fiber.StatusConflict, "LOCKED", "Kỳ này đã khóa sổ, không thể thay đổi"},
	{constants.ErrAlreadyClosed, fiber.StatusConflict, "ALREADY_CLOSED", "Tháng này đã khóa sổ"},
	{constants.ErrPendingInMonth, fiber.StatusConflict, "PENDING_IN_MONTH", "Tháng này vẫn còn khoản đóng quỹ chờ duyệt"},
	{constants.ErrEmailTaken, fiber.StatusConflict, "EMAIL_TAKEN", "Email đã được đăng ký"},
	{constants.ErrInvalidInput, fiber.StatusBadRequest, "BAD_REQUEST", "Dữ liệu không hợp lệ"},
}

// JsonServiceError memetakan sentinel error service ke response standar.
// Error lain dicatat dan dikembalikan sebagai INTERNAL_ERROR dengan pesan generik.
func JsonServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return JsonError(c, fiber.StatusInternalServerError, "")
	}
	for _, m := range serviceErrorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(ErrorResponse{
				Success:   false,
				Message:   m.message,
				ErrorCode: m.code,
			})
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Success:   false,
		Message:   "Đã xảy ra lỗi máy chủ",
		ErrorCode: "INTERNAL_ERROR",
	})
}
