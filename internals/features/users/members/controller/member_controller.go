package controller

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/users/members/dto"
	"clubfund_backend/internals/features/users/members/repository"
	"clubfund_backend/internals/features/users/members/service"
	helper "clubfund_backend/internals/helpers"
	helperOSS "clubfund_backend/internals/helpers/oss"
)

type ImageUploader interface {
	UploadAsWebP(ctx context.Context, fh *multipart.FileHeader, keyPrefix string, opt helperOSS.WebPOptions) (string, error)
}

type MemberController struct {
	Service   *service.MemberService
	Uploader  ImageUploader
	Validator *validator.Validate
}

func NewMemberController(svc *service.MemberService, uploader ImageUploader) *MemberController {
	return &MemberController{Service: svc, Uploader: uploader, Validator: validator.New()}
}

/* =========================
   Member (self)
========================= */

// GET /api/u/me (PENDING juga boleh, untuk melihat status pendaftaran)
func (ctrl *MemberController) Me(c *fiber.Ctx) error {
	id, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctrl.Service.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Hồ sơ", dto.FromModel(*m))
}

// PATCH /api/u/me
func (ctrl *MemberController) UpdateProfile(c *fiber.Ctx) error {
	id, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}
	m, err := ctrl.Service.UpdateProfile(c.UserContext(), id, service.ProfileUpdate{Name: req.Name, Bio: req.Bio})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Đã cập nhật hồ sơ", dto.FromModel(*m))
}

// POST /api/u/me/avatar (multipart "avatar")
func (ctrl *MemberController) UploadAvatar(c *fiber.Ctx) error {
	id, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if ctrl.Uploader == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Chưa cấu hình lưu trữ ảnh")
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Vui lòng tải lên ảnh đại diện")
	}
	if !constants.IsImageFile(fh.Filename) {
		return helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Ảnh đại diện phải là tệp ảnh (png/jpg/webp)")
	}
	url, err := ctrl.Uploader.UploadAsWebP(c.UserContext(), fh, "avatars/"+id.String(), helperOSS.AvatarWebPOptions())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctrl.Service.SetAvatar(c.UserContext(), id, url)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Đã cập nhật ảnh đại diện", dto.FromModel(*m))
}

/* =========================
   Admin
========================= */

// GET /api/a/members?status=&department=&role=&q=&page=&per_page=
func (ctrl *MemberController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ctrl.Service.List(c.UserContext(), repository.ListFilter{
		Status:     strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Department: strings.ToUpper(strings.TrimSpace(c.Query("department"))),
		Role:       strings.ToUpper(strings.TrimSpace(c.Query("role"))),
		Search:     c.Query("q"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonList(c, "Danh sách thành viên", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// PATCH /api/a/members/:id/status
func (ctrl *MemberController) ReviewApplication(c *fiber.Ctx) error {
	callerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.ReviewApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}
	m, err := ctrl.Service.ReviewApplication(c.UserContext(), callerID, id, req.Status)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Đã cập nhật trạng thái thành viên", dto.FromModel(*m))
}

/* =========================
   Super admin
========================= */

// PATCH /api/s/members/:id/role
func (ctrl *MemberController) UpdateRole(c *fiber.Ctx) error {
	callerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}
	m, err := ctrl.Service.UpdateRole(c.UserContext(), callerID, id, req.Role)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Đã cập nhật vai trò", dto.FromModel(*m))
}

// PATCH /api/s/members/:id/department
func (ctrl *MemberController) UpdateDepartment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ctrl.Validator, req); !ok {
		return err
	}
	m, err := ctrl.Service.UpdateDepartment(c.UserContext(), id, req.Department)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Đã cập nhật trạng thái cấm", dto.FromModel(*m))
}

// DELETE /api/s/members/:id
func (ctrl *MemberController) Delete(c *fiber.Ctx) error {
	callerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Service.DeleteMember(c.UserContext(), callerID, id); err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Đã xóa thành viên", fiber.Map{"member_id": id})
}
