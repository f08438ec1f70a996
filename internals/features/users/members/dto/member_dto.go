package dto

import (
	"time"

	"github.com/google/uuid"

	"clubfund_backend/internals/constants"
	"clubfund_backend/internals/features/users/members/model"
)

// ====================
// Response DTO
// ====================

type MemberDTO struct {
	MemberID       uuid.UUID `json:"member_id"`
	Name           string    `json:"member_name"`
	Email          string    `json:"member_email"`
	Department     string    `json:"member_department"`
	DepartmentName string    `json:"member_department_name"`
	Role           string    `json:"member_role"`
	Status         string    `json:"member_status"`
	AvatarURL      *string   `json:"member_avatar_url,omitempty"`
	Bio            *string   `json:"member_bio,omitempty"`
	HasGoogle      bool      `json:"member_has_google"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModel(m model.MemberModel) MemberDTO {
	return MemberDTO{
		MemberID:       m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Department:     m.Department,
		DepartmentName: constants.DepartmentName(m.Department),
		Role:           m.Role,
		Status:         m.Status,
		AvatarURL:      m.AvatarURL,
		Bio:            m.Bio,
		HasGoogle:      m.GoogleID != nil,
		CreatedAt:      m.CreatedAt,
	}
}

func FromModels(rows []model.MemberModel) []MemberDTO {
	out := make([]MemberDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromModel(m))
	}
	return out
}

// ====================
// Request DTO
// ====================

type ReviewApplicationRequest struct {
	Status string `json:"member_status" validate:"required,oneof=ACTIVE REJECTED"`
}

type UpdateRoleRequest struct {
	Role string `json:"member_role" validate:"required,oneof=MEMBER ADMIN SUPER_ADMIN"`
}

type UpdateDepartmentRequest struct {
	Department string `json:"member_department" validate:"required,oneof=SINGING DANCE RAP INSTRUMENT"`
}

type UpdateProfileRequest struct {
	Name *string `json:"member_name" validate:"omitempty,min=2,max=120"`
	Bio  *string `json:"member_bio" validate:"omitempty,max=500"`
}
