package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/features/settings/dto"
	"clubfund_backend/internals/features/settings/repository"
	helper "clubfund_backend/internals/helpers"
)

type SettingsController struct {
	Repo      *repository.SettingsRepository
	Validator *validator.Validate
}

func NewSettingsController(repo *repository.SettingsRepository) *SettingsController {
	return &SettingsController{Repo: repo, Validator: validator.New()}
}

// GET /api/u/settings
func (ctrl *SettingsController) GetSettings(c *fiber.Ctx) error {
	s, err := ctrl.Repo.Get(c.UserContext())
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Cài đặt câu lạc bộ", s)
}

// PUT /api/s/settings
func (ctrl *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}

	s, err := ctrl.Repo.Get(c.UserContext())
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	req.ApplyTo(s)
	if err := ctrl.Repo.Save(c.UserContext(), s); err != nil {
		return helper.JsonServiceError(c, err)
	}

	callerID, _ := helper.GetUserUUID(c)
	log.Printf("[INFO] settings diperbarui oleh %s: weekly_amount=%d", callerID, s.WeeklyAmount)
	return helper.JsonUpdated(c, "Đã cập nhật cài đặt", s)
}
