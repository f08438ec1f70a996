package dto

import (
	"time"

	memberDTO "clubfund_backend/internals/features/users/members/dto"
)

type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Department string `json:"department" validate:"required,oneof=SINGING DANCE RAP INSTRUMENT"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken    string `json:"id_token" validate:"required"`
	Department string `json:"department" validate:"omitempty,oneof=SINGING DANCE RAP INSTRUMENT"`
}

type LoginResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
	ExpiresAt   time.Time           `json:"expires_at"`
	Member      memberDTO.MemberDTO `json:"member"`
}
