package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	contribDTO "clubfund_backend/internals/features/contributions/contributions/dto"
	"clubfund_backend/internals/features/contributions/payments/service"
	helper "clubfund_backend/internals/helpers"
	"clubfund_backend/internals/helpers/dbtime"
	"clubfund_backend/internals/helpers/weeks"
)

type PaymentController struct {
	Service   *service.PaymentService
	Validator *validator.Validate
}

func NewPaymentController(svc *service.PaymentService) *PaymentController {
	return &PaymentController{Service: svc, Validator: validator.New()}
}

// 🟢 POST /api/u/contributions/online { "weeks": 2, "start_week"?: 7, "year"?: 2026 }
func (ctrl *PaymentController) CreateOnline(c *fiber.Ctx) error {
	memberID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req contribDTO.OnlinePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}

	start := weeks.Of(dbtime.NowInClub(c))
	if req.StartWeek > 0 {
		start.Number = req.StartWeek
		if req.Year > 0 {
			start.Year = req.Year
		}
	}
	if !start.Valid() {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Tuần bắt đầu không hợp lệ")
	}

	p, err := ctrl.Service.CreateOnlinePayment(c.UserContext(), memberID, start, req.Weeks)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Đã tạo giao dịch", fiber.Map{
		"order_id":      p.OrderID,
		"snap_token":    p.SnapToken,
		"redirect_url":  p.RedirectURL,
		"gross_amount":  p.GrossAmount,
		"contributions": contribDTO.FromModels(p.Contributions),
	})
}

// 🟢 POST /api/payments/midtrans/notification (public, diverifikasi signature)
func (ctrl *PaymentController) Notification(c *fiber.Ctx) error {
	var n service.Notification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload không hợp lệ")
	}
	if n.OrderID == "" || n.TransactionStatus == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Thiếu order_id / transaction_status")
	}

	res, err := ctrl.Service.HandleNotification(c.UserContext(), n)
	if err != nil {
		log.Printf("[MIDTRANS] order=%s status=%s gagal: %v", n.OrderID, n.TransactionStatus, err)
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", res)
}
