package controller

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/contributions/contributions/dto"
	"clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/features/contributions/contributions/repository"
	"clubfund_backend/internals/features/contributions/contributions/service"
	helper "clubfund_backend/internals/helpers"
	"clubfund_backend/internals/helpers/dbtime"
	helperOSS "clubfund_backend/internals/helpers/oss"
	"clubfund_backend/internals/helpers/weeks"
)

// ProofStorage upload bukti transfer (OSS)
type ProofStorage interface {
	UploadAsWebP(ctx context.Context, fh *multipart.FileHeader, keyPrefix string, opt helperOSS.WebPOptions) (string, error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

type ContributionController struct {
	Service   *service.ContributionService
	Repo      *repository.ContributionRepository
	Storage   ProofStorage
	Validator *validator.Validate
}

func NewContributionController(svc *service.ContributionService, repo *repository.ContributionRepository, storage ProofStorage) *ContributionController {
	return &ContributionController{Service: svc, Repo: repo, Storage: storage, Validator: validator.New()}
}

// resolveStartWeek: start_week/year kosong → minggu berjalan
func resolveStartWeek(c *fiber.Ctx, number, year int) (weeks.Ref, bool) {
	ref := weeks.Of(dbtime.NowInClub(c))
	if number > 0 {
		ref.Number = number
		if year > 0 {
			ref.Year = year
		}
	}
	return ref, ref.Valid()
}

/* =========================
   Member
========================= */

// 🟢 POST /api/u/contributions (multipart: image, weeks, start_week?, year?)
func (ctrl *ContributionController) Submit(c *fiber.Ctx) error {
	memberID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Biểu mẫu không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}
	if req.Weeks < service.MinWeeksPerSubmission || req.Weeks > service.MaxWeeksPerSubmission {
		return helper.JsonServiceError(c, fmt.Errorf("weeks=%d: %w", req.Weeks, constants.ErrInvalidRange))
	}
	start, ok := resolveStartWeek(c, req.StartWeek, req.Year)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Tuần bắt đầu không hợp lệ")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Vui lòng tải lên ảnh chuyển khoản (image)")
	}
	if !constants.IsImageFile(fh.Filename) {
		return helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Ảnh chuyển khoản phải là tệp ảnh (png/jpg/webp)")
	}
	if ctrl.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Chưa cấu hình lưu trữ ảnh")
	}

	imageURL, err := ctrl.Storage.UploadAsWebP(c.UserContext(), fh, fmt.Sprintf("proofs/%d", start.Year), helperOSS.DefaultWebPOptionsFromEnv())
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows, err := ctrl.Service.Submit(c.UserContext(), service.SubmitInput{
		MemberID:       memberID,
		Start:          start,
		WeeksRequested: req.Weeks,
		ImageURL:       imageURL,
	})
	if err != nil {
		// bukti yatim dibuang
		if delErr := ctrl.Storage.DeleteByPublicURL(context.Background(), imageURL); delErr != nil {
			log.Printf("[WARN] gagal hapus bukti %s: %v", imageURL, delErr)
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Đã gửi ảnh chuyển khoản, đang chờ duyệt", dto.NewSubmitResponse(rows))
}

// 🟢 GET /api/u/contributions?status=&year=&page=&per_page=
func (ctrl *ContributionController) ListMine(c *fiber.Ctx) error {
	memberID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Repo.List(c.UserContext(), repository.ListFilter{
		MemberID: &memberID,
		Status:   strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Year:     c.QueryInt("year"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		log.Printf("[ERROR] list contributions member=%s: %v", memberID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Không lấy được danh sách đóng quỹ")
	}
	return helper.JsonList(c, "Khoản đóng quỹ của tôi", dto.FromRows(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// 🟢 GET /api/u/contributions/week-status
func (ctrl *ContributionController) WeekStatus(c *fiber.Ctx) error {
	memberID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	st, err := ctrl.Service.MyWeekStatus(c.UserContext(), memberID, weeks.Of(dbtime.NowInClub(c)))
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Trạng thái tuần", st)
}

// 🟢 DELETE /api/u/contributions/:id
func (ctrl *ContributionController) DeletePending(c *fiber.Ctx) error {
	memberID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Service.DeletePending(c.UserContext(), memberID, id); err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Đã xóa khoản đóng quỹ", fiber.Map{"contribution_id": id})
}

/* =========================
   Admin
========================= */

// 🟢 GET /api/a/contributions?status=&department=&year=&week=&member_id=&page=&per_page=
func (ctrl *ContributionController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	f := repository.ListFilter{
		Status:     strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Department: strings.ToUpper(strings.TrimSpace(c.Query("department"))),
		Year:       c.QueryInt("year"),
		WeekNumber: c.QueryInt("week"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
	if f.Status != "" && !model.ContributionStatus(f.Status).Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Trạng thái không hợp lệ")
	}
	if raw := strings.TrimSpace(c.Query("member_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "member_id không hợp lệ")
		}
		f.MemberID = &id
	}

	rows, total, err := ctrl.Repo.List(c.UserContext(), f)
	if err != nil {
		log.Printf("[ERROR] list contributions: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Không lấy được danh sách đóng quỹ")
	}
	return helper.JsonList(c, "Danh sách đóng quỹ", dto.FromRows(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// 🟢 POST /api/a/contributions/:id/approve
func (ctrl *ContributionController) Approve(c *fiber.Ctx) error {
	reviewer, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ctrl.Service.Approve(c.UserContext(), id, &reviewer)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Đã duyệt khoản đóng quỹ", dto.FromModel(*row))
}

// 🟢 POST /api/a/contributions/:id/reject  { "reason": "..." }
func (ctrl *ContributionController) Reject(c *fiber.Ctx) error {
	reviewer, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}
	row, err := ctrl.Service.Reject(c.UserContext(), id, &reviewer, req.Reason)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Đã từ chối khoản đóng quỹ", dto.FromModel(*row))
}
