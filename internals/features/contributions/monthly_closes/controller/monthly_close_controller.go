package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/features/contributions/monthly_closes/dto"
	"clubfund_backend/internals/features/contributions/monthly_closes/service"
	helper "clubfund_backend/internals/helpers"
)

type MonthlyCloseController struct {
	Service   *service.MonthlyCloseService
	Validator *validator.Validate
}

func NewMonthlyCloseController(svc *service.MonthlyCloseService) *MonthlyCloseController {
	return &MonthlyCloseController{Service: svc, Validator: validator.New()}
}

// 🟢 POST /api/s/monthly-closes { "month": 2, "year": 2026 }
func (ctrl *MonthlyCloseController) Close(c *fiber.Ctx) error {
	callerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CloseMonthRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}
	row, err := ctrl.Service.CloseMonth(c.UserContext(), req.Month, req.Year, callerID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Khóa sổ thành công", dto.FromModel(*row))
}

// 🟢 GET /api/s/monthly-closes?year=
func (ctrl *MonthlyCloseController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Service.List(c.UserContext(), c.QueryInt("year"))
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Danh sách các tháng đã khóa sổ", dto.FromModels(rows))
}
