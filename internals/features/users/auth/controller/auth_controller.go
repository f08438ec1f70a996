package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/features/users/auth/dto"
	"clubfund_backend/internals/features/users/auth/service"
	memberDTO "clubfund_backend/internals/features/users/members/dto"
	helper "clubfund_backend/internals/helpers"
)

type AuthController struct {
	Service   *service.AuthService
	Validator *validator.Validate
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc, Validator: validator.New()}
}

func toLoginResponse(res *service.LoginResult) dto.LoginResponse {
	return dto.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		Member:      memberDTO.FromModel(res.Member),
	}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, req); !ok {
		return err
	}
	m, err := ac.Service.Register(c.UserContext(), service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Đăng ký thành công, đang chờ quản trị viên duyệt", memberDTO.FromModel(*m))
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, req); !ok {
		return err
	}
	res, err := ac.Service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Đăng nhập thành công", toLoginResponse(res))
}

// POST /api/auth/google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, req); !ok {
		return err
	}
	res, err := ac.Service.LoginGoogle(c.UserContext(), req.IDToken, req.Department)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Đăng nhập Google thành công", toLoginResponse(res))
}

// POST /api/u/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Service.Logout(c.UserContext(), helper.GetRawAccessToken(c)); err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Đăng xuất thành công", nil)
}
