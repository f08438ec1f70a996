package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/features/notifications/dto"
	"clubfund_backend/internals/features/notifications/repository"
	"clubfund_backend/internals/features/notifications/service"
	helper "clubfund_backend/internals/helpers"
	"clubfund_backend/internals/helpers/dbtime"
	"clubfund_backend/internals/helpers/weeks"
)

type NotificationController struct {
	Service   *service.NotificationService
	Repo      *repository.NotificationRepository
	Validator *validator.Validate
}

func NewNotificationController(svc *service.NotificationService, repo *repository.NotificationRepository) *NotificationController {
	return &NotificationController{Service: svc, Repo: repo, Validator: validator.New()}
}

// 🟢 POST /api/a/notifications/reminders
// Body opsional { "week_number": 7, "year": 2026 }; default minggu berjalan.
func (ctrl *NotificationController) SendReminders(c *fiber.Ctx) error {
	var req dto.SendReminderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Yêu cầu không hợp lệ")
		}
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}

	week := weeks.Of(dbtime.NowInClub(c))
	if req.WeekNumber > 0 {
		week.Number = req.WeekNumber
		if req.Year > 0 {
			week.Year = req.Year
		}
	}
	if !week.Valid() {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Tuần không hợp lệ")
	}

	res, err := ctrl.Service.SendBulkReminder(c.UserContext(), week)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Đã xử lý nhắc nhở", res)
}

// 🟢 GET /api/a/notifications?template=&status=&page=&per_page=
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Repo.List(c.UserContext(), repository.ListFilter{
		Template: strings.TrimSpace(c.Query("template")),
		Status:   strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		log.Printf("[ERROR] list notifications: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Không lấy được thông báo")
	}
	return helper.JsonList(c, "Danh sách thông báo",
		dto.ToNotificationResponses(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}
