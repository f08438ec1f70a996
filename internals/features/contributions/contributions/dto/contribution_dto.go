package dto

import (
	"time"

	"clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/features/contributions/contributions/repository"

	"github.com/google/uuid"
)

/* =========================
   Request
========================= */

// SubmitRequest form multipart (field "image" terpisah)
type SubmitRequest struct {
	Weeks     int `form:"weeks"` // 1..4, dicek service (INVALID_RANGE)
	StartWeek int `form:"start_week" validate:"omitempty,min=1,max=54"`
	Year      int `form:"year" validate:"omitempty,min=2000,max=2100"`
}

// OnlinePaymentRequest JSON untuk pembayaran online
type OnlinePaymentRequest struct {
	Weeks     int `json:"weeks"`
	StartWeek int `json:"start_week" validate:"omitempty,min=1,max=54"`
	Year      int `json:"year" validate:"omitempty,min=2000,max=2100"`
}

// RejectRequest alasan dicek di service (kosong/spasi → MISSING_REASON)
type RejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

/* =========================
   Response
========================= */

type ContributionDTO struct {
	ID             uuid.UUID  `json:"contribution_id"`
	MemberID       uuid.UUID  `json:"contribution_member_id"`
	Week           string     `json:"contribution_week"`
	WeekNumber     int        `json:"contribution_week_number"`
	Year           int        `json:"contribution_year"`
	Amount         int64      `json:"contribution_amount"`
	ImageURL       string     `json:"contribution_image_url"`
	Status         string     `json:"contribution_status"`
	RejectReason   *string    `json:"contribution_reject_reason,omitempty"`
	IsLocked       bool       `json:"contribution_is_locked"`
	ReviewedBy     *uuid.UUID `json:"contribution_reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"contribution_reviewed_at,omitempty"`
	PaymentOrderID *string    `json:"contribution_payment_order_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	MemberName       string `json:"member_name,omitempty"`
	MemberEmail      string `json:"member_email,omitempty"`
	MemberDepartment string `json:"member_department,omitempty"`
}

func FromModel(m model.ContributionModel) ContributionDTO {
	return ContributionDTO{
		ID:             m.ID,
		MemberID:       m.MemberID,
		Week:           m.Week,
		WeekNumber:     m.WeekNumber,
		Year:           m.Year,
		Amount:         m.Amount,
		ImageURL:       m.ImageURL,
		Status:         string(m.Status),
		RejectReason:   m.RejectReason,
		IsLocked:       m.IsLocked,
		ReviewedBy:     m.ReviewedBy,
		ReviewedAt:     m.ReviewedAt,
		PaymentOrderID: m.PaymentOrderID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func FromModels(rows []model.ContributionModel) []ContributionDTO {
	out := make([]ContributionDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

func FromRows(rows []repository.ContributionRow) []ContributionDTO {
	out := make([]ContributionDTO, 0, len(rows))
	for _, r := range rows {
		d := FromModel(r.ContributionModel)
		d.MemberName = r.MemberName
		d.MemberEmail = r.MemberEmail
		d.MemberDepartment = r.MemberDepartment
		out = append(out, d)
	}
	return out
}

// SubmitResponse hasil submit: record baru + total
type SubmitResponse struct {
	Created     []ContributionDTO `json:"created"`
	Count       int               `json:"count"`
	TotalAmount int64             `json:"total_amount"`
}

func NewSubmitResponse(rows []model.ContributionModel) SubmitResponse {
	var total int64
	for _, r := range rows {
		total += r.Amount
	}
	return SubmitResponse{Created: FromModels(rows), Count: len(rows), TotalAmount: total}
}
